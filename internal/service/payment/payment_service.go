package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
)

type PaymentUseCase interface {
	Process(ctx context.Context, user *domain.User, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	store   repository.Store
	log     logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	producer Producer
	topics   []string
}

type PaymentServiceOption func(*PaymentService)

// WithProducer publishes payment_completed to every non-empty topic.
func WithProducer(p Producer, topics ...string) PaymentServiceOption {
	return func(s *PaymentService) {
		s.producer = p
		s.topics = topics
	}
}

func WithMetrics(m *metrics.Metrics) PaymentServiceOption {
	return func(s *PaymentService) {
		s.metrics = m
	}
}

func WithLogger(log logger.Logger) PaymentServiceOption {
	return func(s *PaymentService) {
		s.log = log
	}
}

func NewPaymentService(store repository.Store, opts ...PaymentServiceOption) *PaymentService {
	s := &PaymentService{store: store, log: logger.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Process records a payment for the whole booking amount. No gateway is
// contacted; the payment always succeeds.
func (s *PaymentService) Process(ctx context.Context, user *domain.User, bookingID int64, method domain.PaymentMethod) (*domain.Payment, error) {
	if !method.Valid() {
		return nil, fmt.Errorf("%w: payment_method must be one of [card bank_transfer paystack stripe]", domain.ErrValidation)
	}

	var (
		payment *domain.Payment
		updated *domain.Booking
	)
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		booking, err := tx.Bookings().GetForUser(ctx, bookingID, user.ID)
		if err != nil {
			return err
		}
		if booking.PaymentStatus == domain.PaymentStatusCompleted {
			return fmt.Errorf("%w: payment already completed", domain.ErrConflict)
		}

		// Claim the status first; a concurrent payment for the same booking
		// fails here instead of inserting a second row.
		updated, err = tx.Bookings().MarkPaid(ctx, booking.ID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		payment = &domain.Payment{
			BookingID:            updated.ID,
			AmountCents:          updated.TotalAmountCents,
			Method:               method,
			TransactionReference: fmt.Sprintf("TXN-%d-%d", updated.ID, now.UnixNano()),
			Status:               domain.PaymentStatusCompleted,
			PaymentDate:          now,
		}
		return tx.Payments().Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("payment processed", "booking_id", bookingID, "payment_id", payment.ID, "method", string(method), "reference", payment.TransactionReference)
	if s.metrics != nil {
		s.metrics.PaymentsProcessed.WithLabelValues(string(method)).Inc()
	}
	if s.producer != nil {
		event := kafka.NewBookingEvent(kafka.EventPaymentCompleted, updated, user.Email, payment.PaymentDate)
		for _, topic := range s.topics {
			if topic == "" {
				continue
			}
			if err := s.producer.Publish(ctx, topic, updated.Reference, event); err != nil {
				s.log.Warn("failed to publish payment event", "topic", topic, "booking_id", bookingID, "error", err)
			}
		}
	}
	return payment, nil
}

var _ PaymentUseCase = (*PaymentService)(nil)
