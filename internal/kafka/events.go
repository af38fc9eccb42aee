package kafka

import (
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingCompleted = "booking_completed"
	EventPaymentCompleted = "payment_completed"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     int64     `json:"booking_id"`
	Reference     string    `json:"booking_reference"`
	UserID        int64     `json:"user_id"`
	Email         string    `json:"email,omitempty"`
	FlightID      int64     `json:"flight_id"`
	Passengers    int       `json:"passengers"`
	AmountCents   int64     `json:"amount_cents"`
	BookingStatus string    `json:"booking_status"`
	PaymentStatus string    `json:"payment_status"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewBookingEvent snapshots b; email may be empty when the owner is unknown.
func NewBookingEvent(eventType string, b *domain.Booking, email string, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		Reference:     b.Reference,
		UserID:        b.UserID,
		Email:         email,
		FlightID:      b.FlightID,
		Passengers:    b.TotalPassengers,
		AmountCents:   b.TotalAmountCents,
		BookingStatus: string(b.BookingStatus),
		PaymentStatus: string(b.PaymentStatus),
		OccurredAt:    at,
	}
}
