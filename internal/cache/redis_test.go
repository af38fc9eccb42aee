package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:flights:page:0:100", flightPageKey(0, 100))
	assert.Equal(t, "cache:flights:page:20:10", flightPageKey(20, 10))
	assert.Equal(t, "cache:airports", airportsKey())
	assert.Equal(t, "cache:flights:*", flightsPattern())
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute, time.Hour)
	defer c.Close()

	assert.Equal(t, time.Minute, c.flightsTTL)
	assert.Equal(t, time.Hour, c.airportsTTL)
}

func TestGetFlightPage_Unreachable(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, time.Minute, time.Hour)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	flights, err := c.GetFlightPage(ctx, 0, 10)
	assert.Error(t, err)
	assert.Nil(t, flights)
}
