package stats

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type StatsUseCase interface {
	Summary(ctx context.Context, user *domain.User) (*domain.BookingStats, error)
}

type StatsService struct {
	store repository.Store
}

func NewStatsService(store repository.Store) *StatsService {
	return &StatsService{store: store}
}

// Summary aggregates the user's bookings; total spent counts only paid bookings.
func (s *StatsService) Summary(ctx context.Context, user *domain.User) (*domain.BookingStats, error) {
	return s.store.Bookings().StatsForUser(ctx, user.ID)
}

var _ StatsUseCase = (*StatsService)(nil)
