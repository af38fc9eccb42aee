package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/api"
	"github.com/Domenick1991/flightbooking/config"
	authn "github.com/Domenick1991/flightbooking/internal/auth"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/cache"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/migrations"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/auth"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/service/flights"
	"github.com/Domenick1991/flightbooking/internal/service/payment"
	"github.com/Domenick1991/flightbooking/internal/service/stats"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer appLogger.Sync()
	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		appLogger.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		applied, err := migrations.Up(ctx, pool)
		if err != nil {
			appLogger.Fatal("apply migrations", "error", err)
		}
		appLogger.Info("migrations applied", "versions", applied)
	}

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Cache.FlightsTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.AirportsTTLSeconds)*time.Second)
	defer redisCache.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, appLogger)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		appLogger.Warn("kafka unavailable, events will be dropped until it recovers", "error", err)
	}

	appMetrics := metrics.NewMetrics("flightbooking")
	store := repository.NewStore(pool)
	tokens := authn.NewTokenManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	router := api.NewRouter(api.Services{
		Auth:    auth.NewAuthService(store, authn.NewPasswordHasher(bcrypt.DefaultCost), tokens, appLogger),
		Flights: flights.NewFlightService(store, redisCache, appLogger),
		Bookings: booking.NewBookingService(store,
			booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic),
			booking.WithCache(redisCache),
			booking.WithMetrics(appMetrics),
			booking.WithLogger(appLogger),
		),
		Payments: payment.NewPaymentService(store,
			payment.WithProducer(producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic),
			payment.WithMetrics(appMetrics),
			payment.WithLogger(appLogger),
		),
		Stats: stats.NewStatsService(store),
		DB:    store,
	}, api.RouterConfig{
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Metrics:     appMetrics,
		Logger:      appLogger,
	})

	if err := bootstrap.Run(ctx, cfg.HTTP, router, appLogger); err != nil {
		appLogger.Fatal("server error", "error", err)
	}
}
