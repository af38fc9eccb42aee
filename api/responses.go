package api

import (
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func amount(cents int64) float64 {
	return float64(cents) / 100
}

type userResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	PhoneNumber *string   `json:"phone_number"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type airportResponse struct {
	ID      int64  `json:"id"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

func newAirportResponses(airports []domain.Airport) []airportResponse {
	out := make([]airportResponse, 0, len(airports))
	for _, a := range airports {
		out = append(out, airportResponse{ID: a.ID, Code: a.Code, Name: a.Name, City: a.City, Country: a.Country})
	}
	return out
}

type flightResponse struct {
	ID              int64     `json:"id"`
	FlightNumber    string    `json:"flight_number"`
	AirlineID       int64     `json:"airline_id"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	DepartureDate   string    `json:"departure_date"`
	DepartureTime   string    `json:"departure_time"`
	ArrivalDate     string    `json:"arrival_date"`
	ArrivalTime     string    `json:"arrival_time"`
	DurationMinutes int       `json:"duration_minutes"`
	ClassType       string    `json:"class_type"`
	Price           float64   `json:"price"`
	TotalSeats      int       `json:"total_seats"`
	AvailableSeats  int       `json:"available_seats"`
	AircraftType    *string   `json:"aircraft_type"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func newFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:              f.ID,
		FlightNumber:    f.FlightNumber,
		AirlineID:       f.AirlineID,
		Origin:          f.Origin,
		Destination:     f.Destination,
		DepartureDate:   f.DepartureAt.Format(dateLayout),
		DepartureTime:   f.DepartureAt.Format(timeLayout),
		ArrivalDate:     f.ArrivalAt.Format(dateLayout),
		ArrivalTime:     f.ArrivalAt.Format(timeLayout),
		DurationMinutes: f.DurationMinutes,
		ClassType:       string(f.ClassType),
		Price:           amount(f.PriceCents),
		TotalSeats:      f.TotalSeats,
		AvailableSeats:  f.AvailableSeats,
		AircraftType:    f.AircraftType,
		Status:          f.Status,
		CreatedAt:       f.CreatedAt,
	}
}

func newFlightResponses(flights []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(flights))
	for i := range flights {
		out = append(out, newFlightResponse(&flights[i]))
	}
	return out
}

type bookingResponse struct {
	ID               int64     `json:"id"`
	BookingReference string    `json:"booking_reference"`
	UserID           int64     `json:"user_id"`
	FlightID         int64     `json:"flight_id"`
	TotalPassengers  int       `json:"total_passengers"`
	TotalAmount      float64   `json:"total_amount"`
	BookingStatus    string    `json:"booking_status"`
	PaymentStatus    string    `json:"payment_status"`
	CreatedAt        time.Time `json:"created_at"`
}

func newBookingResponse(b *domain.Booking) bookingResponse {
	return bookingResponse{
		ID:               b.ID,
		BookingReference: b.Reference,
		UserID:           b.UserID,
		FlightID:         b.FlightID,
		TotalPassengers:  b.TotalPassengers,
		TotalAmount:      amount(b.TotalAmountCents),
		BookingStatus:    string(b.BookingStatus),
		PaymentStatus:    string(b.PaymentStatus),
		CreatedAt:        b.CreatedAt,
	}
}

type passengerResponse struct {
	ID             int64     `json:"id"`
	BookingID      int64     `json:"booking_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	PassportNumber *string   `json:"passport_number"`
	Nationality    string    `json:"nationality"`
	SeatNumber     *string   `json:"seat_number"`
	CreatedAt      time.Time `json:"created_at"`
}

type bookingDetailResponse struct {
	bookingResponse
	Flight     flightResponse      `json:"flight"`
	Passengers []passengerResponse `json:"passengers"`
}

func newBookingDetailResponse(d *domain.BookingDetail) bookingDetailResponse {
	passengers := make([]passengerResponse, 0, len(d.Passengers))
	for _, p := range d.Passengers {
		passengers = append(passengers, passengerResponse{
			ID:             p.ID,
			BookingID:      p.BookingID,
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			DateOfBirth:    p.DateOfBirth.Format(dateLayout),
			Gender:         p.Gender,
			PassportNumber: p.PassportNumber,
			Nationality:    p.Nationality,
			SeatNumber:     p.SeatNumber,
			CreatedAt:      p.CreatedAt,
		})
	}
	return bookingDetailResponse{
		bookingResponse: newBookingResponse(&d.Booking),
		Flight:          newFlightResponse(&d.Flight),
		Passengers:      passengers,
	}
}

type paymentResponse struct {
	ID                   int64     `json:"id"`
	BookingID            int64     `json:"booking_id"`
	Amount               float64   `json:"amount"`
	PaymentMethod        string    `json:"payment_method"`
	TransactionReference string    `json:"transaction_reference"`
	PaymentStatus        string    `json:"payment_status"`
	PaymentDate          time.Time `json:"payment_date"`
}

func newPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:                   p.ID,
		BookingID:            p.BookingID,
		Amount:               amount(p.AmountCents),
		PaymentMethod:        string(p.Method),
		TransactionReference: p.TransactionReference,
		PaymentStatus:        string(p.Status),
		PaymentDate:          p.PaymentDate,
	}
}

type statsResponse struct {
	TotalBookings     int     `json:"total_bookings"`
	ConfirmedBookings int     `json:"confirmed_bookings"`
	CancelledBookings int     `json:"cancelled_bookings"`
	CompletedPayments int     `json:"completed_payments"`
	PendingPayments   int     `json:"pending_payments"`
	TotalAmountSpent  float64 `json:"total_amount_spent"`
}

func newStatsResponse(s *domain.BookingStats) statsResponse {
	return statsResponse{
		TotalBookings:     s.TotalBookings,
		ConfirmedBookings: s.ConfirmedBookings,
		CancelledBookings: s.CancelledBookings,
		CompletedPayments: s.CompletedPayments,
		PendingPayments:   s.PendingPayments,
		TotalAmountSpent:  amount(s.TotalSpentCents),
	}
}
