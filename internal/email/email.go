package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
)

// Sender renders booking notifications. Delivery is a log line until an SMTP
// relay is configured.
type Sender struct {
	log logger.Logger
}

func NewSender(log logger.Logger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		s.log.Warn("skipping notification without recipient", "type", event.Type, "booking_id", event.BookingID)
		return nil
	}
	s.log.Info("email sent",
		"to", event.Email,
		"subject", Subject(event),
		"booking_id", event.BookingID,
		"flight_id", event.FlightID,
	)
	return nil
}

func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Booking %s confirmed", event.Reference)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Booking %s cancelled", event.Reference)
	case kafka.EventPaymentCompleted:
		return fmt.Sprintf("Payment received for booking %s", event.Reference)
	case kafka.EventBookingCompleted:
		return fmt.Sprintf("Thanks for flying with us (%s)", event.Reference)
	default:
		return fmt.Sprintf("Update on booking %s", event.Reference)
	}
}
