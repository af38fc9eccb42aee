package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewStore_Repositories(t *testing.T) {
	store := NewStore(&pgxpool.Pool{})

	assert.NotNil(t, store.Users())
	assert.NotNil(t, store.Airports())
	assert.NotNil(t, store.Airlines())
	assert.NotNil(t, store.Flights())
	assert.NotNil(t, store.Bookings())
	assert.NotNil(t, store.Payments())
}

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "user"))

	err := mapError(pgx.ErrNoRows, "booking")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.EqualError(t, err, "not found: booking not found")

	err = mapError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}, "user")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.EqualError(t, err, "conflict: user already exists")

	other := errors.New("connection reset")
	assert.Equal(t, other, mapError(other, "user"))

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), mapError(fk, "booking"))
}
