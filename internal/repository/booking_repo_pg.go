package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	AddPassenger(ctx context.Context, passenger *domain.Passenger) error
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error)
	ListPassengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error)
	MarkCancelled(ctx context.Context, bookingID int64) (*domain.Booking, error)
	MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error)
	CompleteArrivedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error)
	StatsForUser(ctx context.Context, userID int64) (*domain.BookingStats, error)
}

type PGBookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, COALESCE(booking_reference, ''), user_id, flight_id, total_passengers, total_amount_cents,
	booking_status, payment_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.FlightID, &b.TotalPassengers, &b.TotalAmountCents,
		&b.BookingStatus, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	err := r.db.QueryRow(ctx, `INSERT INTO bookings (booking_reference, user_id, flight_id, total_passengers, total_amount_cents, booking_status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		booking.Reference, booking.UserID, booking.FlightID, booking.TotalPassengers, booking.TotalAmountCents,
		booking.BookingStatus, booking.PaymentStatus).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	return mapError(err, "booking")
}

func (r *PGBookingRepository) AddPassenger(ctx context.Context, p *domain.Passenger) error {
	err := r.db.QueryRow(ctx, `INSERT INTO passengers (booking_id, first_name, last_name, date_of_birth, gender, passport_number, nationality, seat_number)
		VALUES ($1, $2, $3, $4::date, $5, $6, $7, $8)
		RETURNING id, created_at`,
		p.BookingID, p.FirstName, p.LastName, p.DateOfBirth, p.Gender, p.PassportNumber, p.Nationality, p.SeatNumber).
		Scan(&p.ID, &p.CreatedAt)
	return mapError(err, "passenger")
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_id=$1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) GetForUser(ctx context.Context, bookingID, userID int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id=$1 AND user_id=$2`, bookingID, userID))
	if err != nil {
		return nil, mapError(err, "booking")
	}
	return b, nil
}

func (r *PGBookingRepository) ListPassengers(ctx context.Context, bookingID int64) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT id, booking_id, first_name, last_name, date_of_birth, gender, passport_number, nationality, seat_number, created_at
		FROM passengers WHERE booking_id=$1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FirstName, &p.LastName, &p.DateOfBirth, &p.Gender,
			&p.PassportNumber, &p.Nationality, &p.SeatNumber, &p.CreatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

// MarkCancelled moves a booking to cancelled only if it is not cancelled
// yet. The update holds the row lock, so of two concurrent cancellations the
// second sees zero rows and gets ErrConflict.
func (r *PGBookingRepository) MarkCancelled(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET booking_status=$1, updated_at=now()
		WHERE id=$2 AND booking_status <> $1
		RETURNING `+bookingColumns, domain.BookingStatusCancelled, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: booking already cancelled", domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// MarkPaid sets payment_status to completed unless it already is.
func (r *PGBookingRepository) MarkPaid(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `UPDATE bookings SET payment_status=$1, updated_at=now()
		WHERE id=$2 AND payment_status <> $1
		RETURNING `+bookingColumns, domain.PaymentStatusCompleted, bookingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: payment already completed", domain.ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CompleteArrivedBefore marks paid, confirmed bookings completed once their
// flight has arrived before deadline.
func (r *PGBookingRepository) CompleteArrivedBefore(ctx context.Context, deadline time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `UPDATE bookings b SET booking_status=$1, updated_at=now()
		FROM flights f
		WHERE b.flight_id = f.id
		AND b.booking_status = $2 AND b.payment_status = $3
		AND f.arrival_date + f.arrival_time < $4::timestamp
		RETURNING b.id, COALESCE(b.booking_reference, ''), b.user_id, b.flight_id, b.total_passengers, b.total_amount_cents,
			b.booking_status, b.payment_status, b.created_at, b.updated_at`,
		domain.BookingStatusCompleted, domain.BookingStatusConfirmed, domain.PaymentStatusCompleted, deadline)
	if err != nil {
		return nil, err
	}
	return collectBookings(rows)
}

func (r *PGBookingRepository) StatsForUser(ctx context.Context, userID int64) (*domain.BookingStats, error) {
	var s domain.BookingStats
	err := r.db.QueryRow(ctx, `SELECT
			count(*),
			count(*) FILTER (WHERE booking_status = $2),
			count(*) FILTER (WHERE booking_status = $3),
			count(*) FILTER (WHERE payment_status = $4),
			count(*) FILTER (WHERE payment_status = $5),
			COALESCE(SUM(total_amount_cents) FILTER (WHERE payment_status = $4), 0)
		FROM bookings WHERE user_id=$1`,
		userID, domain.BookingStatusConfirmed, domain.BookingStatusCancelled,
		domain.PaymentStatusCompleted, domain.PaymentStatusPending).
		Scan(&s.TotalBookings, &s.ConfirmedBookings, &s.CancelledBookings, &s.CompletedPayments, &s.PendingPayments, &s.TotalSpentCents)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
