package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/bootstrap"
	"github.com/Domenick1991/flightbooking/internal/email"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/metrics"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/service/booking"
	"github.com/Domenick1991/flightbooking/internal/worker"
	"github.com/jackc/pgx/v5/pgxpool"
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

	workerLogger, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer workerLogger.Sync()
	workerLog := workerLogger.With("component", "worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		workerLog.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers, workerLog)
	defer producer.Close()

	location, err := cfg.Worker.Location()
	if err != nil {
		workerLog.Fatal("load flight timezone", "error", err)
	}

	workerMetrics := metrics.NewMetrics("flightbooking_worker")
	metricsCfg := config.HTTPConfig{
		Address:             cfg.Worker.MetricsAddress,
		ReadTimeoutSeconds:  cfg.HTTP.ReadTimeoutSeconds,
		WriteTimeoutSeconds: cfg.HTTP.WriteTimeoutSeconds,
	}
	go func() {
		if err := bootstrap.Run(ctx, metricsCfg, bootstrap.MetricsHandler(workerMetrics), workerLog); err != nil {
			workerLog.Error("metrics server stopped", "error", err)
		}
	}()

	bookingService := booking.NewBookingService(repository.NewStore(pool),
		booking.WithProducer(producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic),
		booking.WithMetrics(workerMetrics),
		booking.WithLogger(workerLog),
		booking.WithLocation(location),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, workerLog)
	defer consumer.Close()

	w := worker.New(consumer, email.NewSender(workerLog), bookingService,
		time.Duration(cfg.Worker.CompletionSweepMinutes)*time.Minute, workerLog)
	if err := w.Run(ctx); err != nil {
		workerLog.Fatal("worker error", "error", err)
	}
}
