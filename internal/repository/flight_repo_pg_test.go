package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execDB answers Exec with a fixed command tag and records the arguments.
type execDB struct {
	tag  string
	err  error
	sql  string
	args []any
}

func (d *execDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	d.sql, d.args = sql, args
	return pgconn.NewCommandTag(d.tag), d.err
}

func (d *execDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *execDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: pgx.ErrNoRows}
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error { return r.err }

func TestFlightRepository_ReserveSeats(t *testing.T) {
	db := &execDB{tag: "UPDATE 1"}
	repo := NewFlightRepository(db)

	require.NoError(t, repo.ReserveSeats(context.Background(), 4, 2))
	assert.Contains(t, db.sql, "available_seats >= $2")
	assert.Equal(t, []any{int64(4), 2}, db.args)
}

func TestFlightRepository_ReserveSeats_NotEnough(t *testing.T) {
	repo := NewFlightRepository(&execDB{tag: "UPDATE 0"})

	err := repo.ReserveSeats(context.Background(), 4, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
}

func TestFlightRepository_ReleaseSeats(t *testing.T) {
	db := &execDB{tag: "UPDATE 1"}
	repo := NewFlightRepository(db)

	require.NoError(t, repo.ReleaseSeats(context.Background(), 4, 3))
	assert.Contains(t, db.sql, "LEAST(total_seats")

	err := NewFlightRepository(&execDB{tag: "UPDATE 0"}).ReleaseSeats(context.Background(), 4, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = NewFlightRepository(&execDB{err: errors.New("conn closed")}).ReleaseSeats(context.Background(), 4, 3)
	assert.EqualError(t, err, "conn closed")
}

func TestFlightRepository_GetByID_NotFound(t *testing.T) {
	_, err := NewFlightRepository(&execDB{}).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingRepository_GetForUser_NotFound(t *testing.T) {
	_, err := NewBookingRepository(&execDB{}).GetForUser(context.Background(), 1, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
