package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store groups the repositories over one connection or transaction.
type Store interface {
	Users() UserRepository
	Airports() AirportRepository
	Airlines() AirlineRepository
	Flights() FlightRepository
	Bookings() BookingRepository
	Payments() PaymentRepository

	// InTx runs fn with a Store bound to a new transaction. The transaction
	// commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type PGStore struct {
	pool *pgxpool.Pool
	db   DBTX
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool, db: pool}
}

func (s *PGStore) Users() UserRepository       { return NewUserRepository(s.db) }
func (s *PGStore) Airports() AirportRepository { return NewAirportRepository(s.db) }
func (s *PGStore) Airlines() AirlineRepository { return NewAirlineRepository(s.db) }
func (s *PGStore) Flights() FlightRepository   { return NewFlightRepository(s.db) }
func (s *PGStore) Bookings() BookingRepository { return NewBookingRepository(s.db) }
func (s *PGStore) Payments() PaymentRepository { return NewPaymentRepository(s.db) }

func (s *PGStore) InTx(ctx context.Context, fn func(tx Store) error) error {
	if _, nested := s.db.(pgx.Tx); nested {
		return fn(s)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(&PGStore{pool: s.pool, db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Ping checks database connectivity for health reporting.
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

var _ Store = (*PGStore)(nil)
