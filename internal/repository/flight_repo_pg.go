package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
)

type FlightRepository interface {
	List(ctx context.Context, skip, limit int) ([]domain.Flight, error)
	Search(ctx context.Context, q domain.FlightSearch) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	ReserveSeats(ctx context.Context, flightID int64, seats int) error
	ReleaseSeats(ctx context.Context, flightID int64, seats int) error
}

type PGFlightRepository struct {
	db DBTX
}

func NewFlightRepository(db DBTX) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, flight_number, airline_id, origin, destination,
	departure_date + departure_time, arrival_date + arrival_time,
	duration_minutes, class_type, price_cents, total_seats, available_seats,
	aircraft_type, status, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.AirlineID, &f.Origin, &f.Destination,
		&f.DepartureAt, &f.ArrivalAt,
		&f.DurationMinutes, &f.ClassType, &f.PriceCents, &f.TotalSeats, &f.AvailableSeats,
		&f.AircraftType, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func collectFlights(rows pgx.Rows) ([]domain.Flight, error) {
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) List(ctx context.Context, skip, limit int) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY id OFFSET $1 LIMIT $2`, skip, limit)
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) Search(ctx context.Context, q domain.FlightSearch) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights
		WHERE origin=$1 AND destination=$2 AND departure_date=$3::date AND available_seats >= $4
		AND ($5 = '' OR class_type = $5)
		ORDER BY departure_date, departure_time, id`,
		q.Origin, q.Destination, q.DepartureDate, q.Passengers, string(q.ClassType))
	if err != nil {
		return nil, err
	}
	return collectFlights(rows)
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id))
	if err != nil {
		return nil, mapError(err, "flight")
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	if flight.Status == "" {
		flight.Status = domain.FlightStatusScheduled
	}
	err := r.db.QueryRow(ctx, `INSERT INTO flights (flight_number, airline_id, origin, destination,
			departure_date, departure_time, arrival_date, arrival_time,
			duration_minutes, class_type, price_cents, total_seats, available_seats, aircraft_type, status)
		VALUES ($1, $2, $3, $4,
			$5::timestamp::date, $5::timestamp::time, $6::timestamp::date, $6::timestamp::time,
			$7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.AirlineID, flight.Origin, flight.Destination,
		flight.DepartureAt, flight.ArrivalAt,
		flight.DurationMinutes, flight.ClassType, flight.PriceCents, flight.TotalSeats, flight.AvailableSeats,
		flight.AircraftType, flight.Status).
		Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt)
	return mapError(err, "flight")
}

// ReserveSeats decrements available_seats only while enough remain, so two
// concurrent bookings cannot take the count below zero.
func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID int64, seats int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND available_seats >= $2`, flightID, seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: flight %d cannot take %d more passengers", domain.ErrInsufficientSeats, flightID, seats)
	}
	return nil
}

func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID int64, seats int) error {
	res, err := r.db.Exec(ctx, `UPDATE flights SET available_seats = LEAST(total_seats, available_seats + $2), updated_at = now()
		WHERE id=$1`, flightID, seats)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: flight not found", domain.ErrNotFound)
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
