// Command server runs the lexitrack HTTP API.
//
// Configuration is read from CONFIG_PATH (default ./config.yaml) and the
// environment. SIGINT and SIGTERM trigger a graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/heartmarshall/lexitrack/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		slog.Error("application failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
