package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
http:
  address: ":9000"
database:
  host: localhost
  port: 5432
  user: flightuser
  password: flightpass
  name: flightdb
auth:
  jwt_secret: secret
kafka:
  brokers: ["localhost:9092"]
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	cfg.applyDefaults()

	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, 30, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "booking_events", cfg.Kafka.BookingEventsTopic)
	assert.Equal(t, "notifications", cfg.Kafka.NotificationsTopic)
	assert.Equal(t, []string{"*"}, cfg.HTTP.CORSOrigins)
	assert.Equal(t, ":9101", cfg.Worker.MetricsAddress)
	assert.Equal(t, "Africa/Lagos", cfg.Worker.FlightTimezone)
	assert.NoError(t, cfg.Validate())

	loc, err := cfg.Worker.Location()
	require.NoError(t, err)
	assert.Equal(t, "Africa/Lagos", loc.String())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", d.DSN())

	d.URL = "postgres://u:p@db:5432/n"
	assert.Equal(t, "postgres://u:p@db:5432/n", d.DSN())
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{}
	env := map[string]string{
		"DATABASE_URL":  "postgres://x",
		"JWT_SECRET":    "from-env",
		"KAFKA_BROKERS": "a:9092,b:9092",
		"LOG_LEVEL":     "debug",
	}
	cfg.applyEnv(func(k string) string { return env[k] })

	assert.Equal(t, "postgres://x", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_RequiresSecret(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()
	assert.EqualError(t, cfg.Validate(), "auth.jwt_secret is required")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 60, cfg.Cache.FlightsTTLSeconds)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read config")
}

func TestValidate_RejectsUnknownTimezone(t *testing.T) {
	cfg := &Config{Auth: AuthConfig{JWTSecret: "secret"}, Worker: WorkerConfig{FlightTimezone: "Mars/Olympus"}}
	cfg.applyDefaults()
	assert.ErrorContains(t, cfg.Validate(), "worker.flight_timezone")
}
