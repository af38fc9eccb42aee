package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestSubject(t *testing.T) {
	cases := map[string]string{
		kafka.EventBookingCreated:   "Booking BK1 confirmed",
		kafka.EventBookingCancelled: "Booking BK1 cancelled",
		kafka.EventPaymentCompleted: "Payment received for booking BK1",
		kafka.EventBookingCompleted: "Thanks for flying with us (BK1)",
		"unknown":                   "Update on booking BK1",
	}
	for typ, want := range cases {
		assert.Equal(t, want, Subject(kafka.BookingEvent{Type: typ, Reference: "BK1"}), typ)
	}
}

func TestSend(t *testing.T) {
	s := NewSender(logger.NewNop())
	assert.NoError(t, s.Send(context.Background(), kafka.BookingEvent{Type: kafka.EventBookingCreated, Email: "a@example.com"}))
	assert.NoError(t, s.Send(context.Background(), kafka.BookingEvent{Type: kafka.EventBookingCreated}))
}
