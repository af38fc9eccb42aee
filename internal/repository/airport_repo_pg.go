package repository

import (
	"context"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

type AirportRepository interface {
	List(ctx context.Context) ([]domain.Airport, error)
	Create(ctx context.Context, airport *domain.Airport) error
	Count(ctx context.Context) (int, error)
}

type AirlineRepository interface {
	List(ctx context.Context) ([]domain.Airline, error)
	Create(ctx context.Context, airline *domain.Airline) error
}

type PGAirportRepository struct {
	db DBTX
}

func NewAirportRepository(db DBTX) AirportRepository {
	return &PGAirportRepository{db: db}
}

func (r *PGAirportRepository) List(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, city, country, timezone, created_at FROM airports ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.City, &a.Country, &a.Timezone, &a.CreatedAt); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGAirportRepository) Create(ctx context.Context, airport *domain.Airport) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airports (code, name, city, country, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		airport.Code, airport.Name, airport.City, airport.Country, airport.Timezone).
		Scan(&airport.ID, &airport.CreatedAt)
	return mapError(err, "airport")
}

func (r *PGAirportRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM airports`).Scan(&n)
	return n, err
}

type PGAirlineRepository struct {
	db DBTX
}

func NewAirlineRepository(db DBTX) AirlineRepository {
	return &PGAirlineRepository{db: db}
}

func (r *PGAirlineRepository) List(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT id, code, name, country, created_at FROM airlines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Code, &a.Name, &a.Country, &a.CreatedAt); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	err := r.db.QueryRow(ctx, `INSERT INTO airlines (code, name, country) VALUES ($1, $2, $3) RETURNING id, created_at`,
		airline.Code, airline.Name, airline.Country).
		Scan(&airline.ID, &airline.CreatedAt)
	return mapError(err, "airline")
}

var (
	_ AirportRepository = (*PGAirportRepository)(nil)
	_ AirlineRepository = (*PGAirlineRepository)(nil)
)
