// Package mocks provides testify mocks of the repository interfaces and an
// in-process Store that hands them out.
package mocks

import (
	"context"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/stretchr/testify/mock"
)

// Store runs InTx callbacks inline against the same mocks. A failing
// callback bumps RolledBack instead of Committed.
type Store struct {
	UserRepo    *UserRepository
	AirportRepo *AirportRepository
	AirlineRepo *AirlineRepository
	FlightRepo  *FlightRepository
	BookingRepo *BookingRepository
	PaymentRepo *PaymentRepository

	Committed  int
	RolledBack int
}

func NewStore() *Store {
	return &Store{
		UserRepo:    &UserRepository{},
		AirportRepo: &AirportRepository{},
		AirlineRepo: &AirlineRepository{},
		FlightRepo:  &FlightRepository{},
		BookingRepo: &BookingRepository{},
		PaymentRepo: &PaymentRepository{},
	}
}

func (s *Store) Users() repository.UserRepository       { return s.UserRepo }
func (s *Store) Airports() repository.AirportRepository { return s.AirportRepo }
func (s *Store) Airlines() repository.AirlineRepository { return s.AirlineRepo }
func (s *Store) Flights() repository.FlightRepository   { return s.FlightRepo }
func (s *Store) Bookings() repository.BookingRepository { return s.BookingRepo }
func (s *Store) Payments() repository.PaymentRepository { return s.PaymentRepo }

func (s *Store) InTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if err := fn(s); err != nil {
		s.RolledBack++
		return err
	}
	s.Committed++
	return nil
}

// AssertExpectations checks every repository mock.
func (s *Store) AssertExpectations(t mock.TestingT) {
	s.UserRepo.AssertExpectations(t)
	s.AirportRepo.AssertExpectations(t)
	s.AirlineRepo.AssertExpectations(t)
	s.FlightRepo.AssertExpectations(t)
	s.BookingRepo.AssertExpectations(t)
	s.PaymentRepo.AssertExpectations(t)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type AirportRepository struct {
	mock.Mock
}

func (m *AirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

func (m *AirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	args := m.Called(ctx, airport)
	return args.Error(0)
}

func (m *AirportRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type AirlineRepository struct {
	mock.Mock
}

func (m *AirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airline), args.Error(1)
}

func (m *AirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	args := m.Called(ctx, airline)
	return args.Error(0)
}

type FlightRepository struct {
	mock.Mock
}

func (m *FlightRepository) List(ctx context.Context, skip, limit int) ([]domain.Flight, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) Search(ctx context.Context, q domain.FlightSearch) ([]domain.Flight, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *FlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *FlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *FlightRepository) ReserveSeats(ctx context.Context, flightID int64, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

func (m *FlightRepository) ReleaseSeats(ctx context.Context, flightID int64, seats int) error {
	args := m.Called(ctx, flightID, seats)
	return args.Error(0)
}

type BookingRepository struct {
	mock.Mock
}

func (m *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *BookingRepository) AddPassenger(ctx context.Context, passenger *domain.Passenger) error {
	args := m.Called(ctx, passenger)
	return args.Error(0)
}

func (m *BookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepository) GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

func (m *BookingRepository) MarkCancelled(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *BookingRepository) CompleteArrivedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, deadline)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *BookingRepository) StatsForUser(ctx context.Context, userID int64) (*domain.BookingStats, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

var _ repository.Store = (*Store)(nil)
