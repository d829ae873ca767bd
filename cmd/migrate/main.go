// Command migrate applies all pending database migrations and exits.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	"github.com/heartmarshall/lexitrack/internal/app"
	"github.com/heartmarshall/lexitrack/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, logger); err != nil {
		logger.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("migrations up to date")
}
