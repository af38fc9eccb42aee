package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/Domenick1991/flightbooking/config"
	"github.com/Domenick1991/flightbooking/internal/logger"
	"github.com/Domenick1991/flightbooking/internal/migrations"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/Domenick1991/flightbooking/internal/seed"
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

	seedLogger, err := logger.New(cfg.Log.Level, true)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer seedLogger.Sync()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		seedLogger.Fatal("connect postgres", "error", err)
	}
	defer pool.Close()

	if _, err := migrations.Up(ctx, pool); err != nil {
		seedLogger.Fatal("apply migrations", "error", err)
	}

	now := time.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(os.Getpid())))
	if _, err := seed.NewSeeder(repository.NewStore(pool), rng, seedLogger).Run(ctx, now); err != nil {
		seedLogger.Fatal("seed database", "error", err)
	}
}
