package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client      *redis.Client
	flightsTTL  time.Duration
	airportsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL, airportsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL:  flightsTTL,
		airportsTTL: airportsTTL,
	}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlightPage returns nil, nil on a miss.
func (c *RedisCache) GetFlightPage(ctx context.Context, skip, limit int) ([]domain.Flight, error) {
	var flights []domain.Flight
	ok, err := c.get(ctx, flightPageKey(skip, limit), &flights)
	if err != nil || !ok {
		return nil, err
	}
	return flights, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, skip, limit int, flights []domain.Flight) error {
	return c.set(ctx, flightPageKey(skip, limit), flights, c.flightsTTL)
}

// InvalidateFlights drops every cached flight page.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, flightsPattern(), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *RedisCache) GetAirports(ctx context.Context) ([]domain.Airport, error) {
	var airports []domain.Airport
	ok, err := c.get(ctx, airportsKey(), &airports)
	if err != nil || !ok {
		return nil, err
	}
	return airports, nil
}

func (c *RedisCache) SetAirports(ctx context.Context, airports []domain.Airport) error {
	return c.set(ctx, airportsKey(), airports, c.airportsTTL)
}

func (c *RedisCache) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func flightPageKey(skip, limit int) string {
	return fmt.Sprintf("cache:flights:page:%d:%d", skip, limit)
}

func flightsPattern() string {
	return "cache:flights:*"
}

func airportsKey() string {
	return "cache:airports"
}
