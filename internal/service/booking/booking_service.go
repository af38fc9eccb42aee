package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/validation"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.Booking, error)
	ListBookings(ctx context.Context, user *domain.User) ([]domain.Booking, error)
	GetBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.BookingDetail, error)
	CancelBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.Booking, error)
	CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error)
}

// Cache is the part of the flight cache that seat changes make stale.
type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PassengerInput struct {
	FirstName      string    `validate:"required,min=1,max=100"`
	LastName       string    `validate:"required,min=1,max=100"`
	DateOfBirth    time.Time `validate:"required"`
	Gender         string    `validate:"required,oneof=male female other"`
	PassportNumber *string   `validate:"omitempty,max=50"`
	Nationality    string    `validate:"required,min=2,max=100"`
	SeatNumber     *string   `validate:"omitempty,max=10"`
}

type CreateBookingInput struct {
	FlightID   int64            `validate:"required,gt=0"`
	Passengers []PassengerInput `validate:"min=1,max=9,dive"`
}

type BookingServiceOption func(*BookingService)

func WithProducer(p Producer, bookingTopic, notificationsTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = p
		s.bookingTopic = bookingTopic
		s.notificationsTopic = notificationsTopic
	}
}

func WithCache(c Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = c
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func WithLogger(log logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

// WithLocation sets the zone flight schedules are written in. Departure and
// arrival columns hold local wall-clock times without an offset.
func WithLocation(loc *time.Location) BookingServiceOption {
	return func(s *BookingService) {
		s.location = loc
	}
}

type BookingService struct {
	store              repository.Store
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	metrics            *metrics.Metrics
	log                logger.Logger
	now                func() time.Time
	location           *time.Location
	newReference       func() string
}

func NewBookingService(store repository.Store, opts ...BookingServiceOption) *BookingService {
	service := &BookingService{
		store:        store,
		log:          logger.NewNop(),
		now:          time.Now,
		location:     time.UTC,
		newReference: NewReference,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewReference returns "BK" followed by eight upper-case hex digits.
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "BK" + strings.ToUpper(id[:8])
}

func (s *BookingService) CreateBooking(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.Booking, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var booking *domain.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		flight, err := tx.Flights().GetByID(ctx, input.FlightID)
		if err != nil {
			return err
		}

		seats := len(input.Passengers)
		if flight.AvailableSeats < seats {
			return fmt.Errorf("%w: only %d seats available", domain.ErrInsufficientSeats, flight.AvailableSeats)
		}

		booking = &domain.Booking{
			Reference:        s.newReference(),
			UserID:           user.ID,
			FlightID:         flight.ID,
			TotalPassengers:  seats,
			TotalAmountCents: flight.PriceCents * int64(seats),
			BookingStatus:    domain.BookingStatusConfirmed,
			PaymentStatus:    domain.PaymentStatusPending,
		}
		if err := tx.Bookings().Create(ctx, booking); err != nil {
			return err
		}

		for _, p := range input.Passengers {
			passenger := &domain.Passenger{
				BookingID:      booking.ID,
				FirstName:      p.FirstName,
				LastName:       p.LastName,
				DateOfBirth:    p.DateOfBirth,
				Gender:         p.Gender,
				PassportNumber: p.PassportNumber,
				Nationality:    p.Nationality,
				SeatNumber:     p.SeatNumber,
			}
			if err := tx.Bookings().AddPassenger(ctx, passenger); err != nil {
				return err
			}
		}

		// A concurrent booking may have taken the seats since the read above.
		return tx.Flights().ReserveSeats(ctx, flight.ID, seats)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking created", "booking_id", booking.ID, "reference", booking.Reference, "user_id", user.ID, "passengers", booking.TotalPassengers)
	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
		s.metrics.SeatsBooked.Add(float64(booking.TotalPassengers))
	}
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventBookingCreated, booking, user.Email)
	return booking, nil
}

func (s *BookingService) ListBookings(ctx context.Context, user *domain.User) ([]domain.Booking, error) {
	return s.store.Bookings().ListByUser(ctx, user.ID)
}

func (s *BookingService) GetBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.BookingDetail, error) {
	booking, err := s.store.Bookings().GetForUser(ctx, bookingID, user.ID)
	if err != nil {
		return nil, err
	}
	flight, err := s.store.Flights().GetByID(ctx, booking.FlightID)
	if err != nil {
		return nil, err
	}
	passengers, err := s.store.Bookings().ListPassengers(ctx, booking.ID)
	if err != nil {
		return nil, err
	}
	return &domain.BookingDetail{Booking: *booking, Flight: *flight, Passengers: passengers}, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.Booking, error) {
	var updated *domain.Booking
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		current, err := tx.Bookings().GetForUser(ctx, bookingID, user.ID)
		if err != nil {
			return err
		}
		if current.BookingStatus == domain.BookingStatusCancelled {
			return fmt.Errorf("%w: booking already cancelled", domain.ErrConflict)
		}

		// Seats go back only after this transaction owns the status change.
		updated, err = tx.Bookings().MarkCancelled(ctx, current.ID)
		if err != nil {
			return err
		}
		return tx.Flights().ReleaseSeats(ctx, updated.FlightID, updated.TotalPassengers)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("booking cancelled", "booking_id", updated.ID, "reference", updated.Reference, "user_id", user.ID)
	if s.metrics != nil {
		s.metrics.BookingsCancelled.Inc()
	}
	s.invalidate(ctx)
	s.publish(ctx, kafka.EventBookingCancelled, updated, user.Email)
	return updated, nil
}

// CompleteDepartedBookings marks confirmed, paid bookings whose flight has
// already arrived as completed.
func (s *BookingService) CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error) {
	completed, err := s.store.Bookings().CompleteArrivedBefore(ctx, wallClock(s.now(), s.location))
	if err != nil {
		return nil, err
	}
	if len(completed) == 0 {
		return completed, nil
	}

	s.log.Info("bookings completed", "count", len(completed))
	if s.metrics != nil {
		s.metrics.BookingsCompleted.Add(float64(len(completed)))
	}
	for i := range completed {
		s.publish(ctx, kafka.EventBookingCompleted, &completed[i], "")
	}
	return completed, nil
}

// wallClock returns t as read on a clock in loc, tagged UTC so the driver
// binds it to a timestamp column unchanged.
func wallClock(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		s.log.Warn("failed to invalidate flight cache", "error", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, b *domain.Booking, email string) {
	if s.producer == nil {
		return
	}
	event := kafka.NewBookingEvent(eventType, b, email, s.now().UTC())
	for _, topic := range []string{s.bookingTopic, s.notificationsTopic} {
		if topic == "" {
			continue
		}
		if err := s.producer.Publish(ctx, topic, b.Reference, event); err != nil {
			s.log.Warn("failed to publish booking event", "type", eventType, "topic", topic, "booking_id", b.ID, "error", err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
