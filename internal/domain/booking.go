package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

const MaxPassengers = 9

type Booking struct {
	ID               int64
	Reference        string
	UserID           int64
	FlightID         int64
	TotalPassengers  int
	TotalAmountCents int64
	BookingStatus    BookingStatus
	PaymentStatus    PaymentStatus
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Passenger struct {
	ID             int64
	BookingID      int64
	FirstName      string
	LastName       string
	DateOfBirth    time.Time
	Gender         string
	PassportNumber *string
	Nationality    string
	SeatNumber     *string
	CreatedAt      time.Time
}

type BookingDetail struct {
	Booking    Booking
	Flight     Flight
	Passengers []Passenger
}

type BookingStats struct {
	TotalBookings     int
	ConfirmedBookings int
	CancelledBookings int
	CompletedPayments int
	PendingPayments   int
	TotalSpentCents   int64
}
