package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/validation"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

var errNoFlights = fmt.Errorf("%w: no flights found for the selected criteria", domain.ErrNotFound)

type FlightUseCase interface {
	Search(ctx context.Context, input SearchInput) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	List(ctx context.Context, skip, limit int) ([]domain.Flight, error)
	Airports(ctx context.Context) ([]domain.Airport, error)
}

// FlightCache is the read-through cache for flight pages and airports.
// A miss returns nil, nil.
type FlightCache interface {
	GetFlightPage(ctx context.Context, skip, limit int) ([]domain.Flight, error)
	SetFlightPage(ctx context.Context, skip, limit int, flights []domain.Flight) error
	GetAirports(ctx context.Context) ([]domain.Airport, error)
	SetAirports(ctx context.Context, airports []domain.Airport) error
}

type SearchInput struct {
	Origin        string     `validate:"required,iata"`
	Destination   string     `validate:"required,iata"`
	DepartureDate time.Time  `validate:"required"`
	ReturnDate    *time.Time `validate:"omitempty"`
	Passengers    int        `validate:"min=0,max=9"`
	ClassType     string     `validate:"omitempty,oneof=economy business first"`
}

type FlightService struct {
	store repository.Store
	cache FlightCache
	log   logger.Logger
}

// NewFlightService accepts a nil cache.
func NewFlightService(store repository.Store, cache FlightCache, log logger.Logger) *FlightService {
	return &FlightService{store: store, cache: cache, log: log}
}

func (s *FlightService) Search(ctx context.Context, input SearchInput) ([]domain.Flight, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.ReturnDate != nil && input.ReturnDate.Before(input.DepartureDate) {
		return nil, fmt.Errorf("%w: return_date must not be before departure_date", domain.ErrValidation)
	}

	passengers := input.Passengers
	if passengers == 0 {
		passengers = 1
	}

	flights, err := s.store.Flights().Search(ctx, domain.FlightSearch{
		Origin:        strings.ToUpper(input.Origin),
		Destination:   strings.ToUpper(input.Destination),
		DepartureDate: input.DepartureDate,
		Passengers:    passengers,
		ClassType:     domain.ClassType(input.ClassType),
	})
	if err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, errNoFlights
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.store.Flights().GetByID(ctx, id)
}

func (s *FlightService) List(ctx context.Context, skip, limit int) ([]domain.Flight, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}
	if skip < 0 {
		return nil, fmt.Errorf("%w: skip must be at least 0", domain.ErrValidation)
	}
	if limit < 1 || limit > MaxListLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", domain.ErrValidation, MaxListLimit)
	}

	if s.cache != nil {
		cached, err := s.cache.GetFlightPage(ctx, skip, limit)
		if err != nil {
			s.log.Warn("flight cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	flights, err := s.store.Flights().List(ctx, skip, limit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetFlightPage(ctx, skip, limit, flights); err != nil {
			s.log.Warn("flight cache write failed", "error", err)
		}
	}
	return flights, nil
}

func (s *FlightService) Airports(ctx context.Context) ([]domain.Airport, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAirports(ctx)
		if err != nil {
			s.log.Warn("airport cache read failed", "error", err)
		} else if cached != nil {
			return cached, nil
		}
	}

	airports, err := s.store.Airports().List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAirports(ctx, airports); err != nil {
			s.log.Warn("airport cache write failed", "error", err)
		}
	}
	return airports, nil
}

var _ FlightUseCase = (*FlightService)(nil)
