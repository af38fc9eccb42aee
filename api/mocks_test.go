package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, input auth.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthUseCase) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockFlightUseCase struct {
	mock.Mock
}

func (m *MockFlightUseCase) Search(ctx context.Context, input flights.SearchInput) ([]domain.Flight, error) {
	args := m.Called(ctx, input)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) List(ctx context.Context, skip, limit int) ([]domain.Flight, error) {
	args := m.Called(ctx, skip, limit)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightUseCase) Airports(ctx context.Context) ([]domain.Airport, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Airport), args.Error(1)
}

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CreateBooking(ctx context.Context, user *domain.User, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, user, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) ListBookings(ctx context.Context, user *domain.User) ([]domain.Booking, error) {
	args := m.Called(ctx, user)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) GetBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.BookingDetail, error) {
	args := m.Called(ctx, user, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingUseCase) CancelBooking(ctx context.Context, user *domain.User, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, user, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) CompleteDepartedBookings(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockPaymentUseCase struct {
	mock.Mock
}

func (m *MockPaymentUseCase) Process(ctx context.Context, user *domain.User, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error) {
	args := m.Called(ctx, user, bookingID, method)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type MockStatsUseCase struct {
	mock.Mock
}

func (m *MockStatsUseCase) Summary(ctx context.Context, user *domain.User) (*domain.BookingStats, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error { return p.err }

const validToken = "good-token"

var alice = &domain.User{ID: 7, Username: "alice", Email: "alice@example.com", FullName: "Alice Adeyemi", IsActive: true}

type testServer struct {
	auth     *MockAuthUseCase
	flights  *MockFlightUseCase
	bookings *MockBookingUseCase
	payments *MockPaymentUseCase
	stats    *MockStatsUseCase
	metrics  *metrics.Metrics
	router   *gin.Engine
}

func newTestServer(db Pinger) *testServer {
	gin.SetMode(gin.TestMode)
	s := &testServer{
		auth:     &MockAuthUseCase{},
		flights:  &MockFlightUseCase{},
		bookings: &MockBookingUseCase{},
		payments: &MockPaymentUseCase{},
		stats:    &MockStatsUseCase{},
		metrics:  metrics.NewMetrics("test"),
	}
	s.auth.On("Authenticate", mock.Anything, validToken).Return(alice, nil).Maybe()
	s.auth.On("Authenticate", mock.Anything, mock.Anything).
		Return(nil, domain.ErrUnauthorized).Maybe()

	s.router = NewRouter(Services{
		Auth:     s.auth,
		Flights:  s.flights,
		Bookings: s.bookings,
		Payments: s.payments,
		Stats:    s.stats,
		DB:       db,
	}, RouterConfig{Metrics: s.metrics, Logger: logger.NewNop()})
	return s
}

func (s *testServer) do(method, path, body string, authed bool) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+validToken)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) assertExpectations(t *testing.T) {
	s.flights.AssertExpectations(t)
	s.bookings.AssertExpectations(t)
	s.payments.AssertExpectations(t)
	s.stats.AssertExpectations(t)
}
