package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/dailystat"
	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/lemma"
	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/surface"
	"github.com/heartmarshall/lexitrack/internal/adapter/provider/fallback"
	"github.com/heartmarshall/lexitrack/internal/adapter/provider/lemmatizer"
	"github.com/heartmarshall/lexitrack/internal/adapter/redis"
	"github.com/heartmarshall/lexitrack/internal/auth"
	"github.com/heartmarshall/lexitrack/internal/config"
	"github.com/heartmarshall/lexitrack/internal/dataloader"
	"github.com/heartmarshall/lexitrack/internal/service/dailystats"
	ledgersvc "github.com/heartmarshall/lexitrack/internal/service/ledger"
	"github.com/heartmarshall/lexitrack/internal/service/pipeline"
	"github.com/heartmarshall/lexitrack/internal/service/stats"
	"github.com/heartmarshall/lexitrack/internal/service/wordstore"
	"github.com/heartmarshall/lexitrack/internal/transport/middleware"
	"github.com/heartmarshall/lexitrack/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, connects to
// Postgres and Redis, wires the services and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	shutdownTracing, err := InitTracing(ctx, cfg.Tracing, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing shutdown", slog.String("error", err.Error()))
		}
	}()

	// Postgres
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connected",
		slog.Int("max_conns", int(cfg.Database.MaxConns)),
	)

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Redis
	rdb, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()
	cache := redis.NewWordCache(rdb, cfg.Redis.CacheTTL)
	logger.Info("cache connected", slog.String("addr", cfg.Redis.Addr))

	handler, cleanup := NewHandler(cfg, logger, pool, cache)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// NewHandler wires repositories, services and the middleware stack on top
// of an open pool and cache. The returned cleanup releases background
// resources owned by the handler.
func NewHandler(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool, cache *redis.WordCache) (http.Handler, func()) {
	cleanup := func() {}

	// Repositories
	txm := postgres.NewTxManager(pool)
	lemmaRepo := lemma.New(pool)
	surfaceRepo := surface.New(pool)
	ledgerRepo := ledger.New(pool)
	dailyRepo := dailystat.New(pool)

	// Services
	words := wordstore.NewService(logger, lemmaRepo, surfaceRepo, cache)
	ledgerService := ledgersvc.NewService(logger, ledgerRepo, txm)
	dailyService := dailystats.NewService(logger, dailyRepo)
	statsService := stats.NewService(logger, dailyRepo, ledgerService)
	pipelineService := pipeline.NewService(
		logger,
		cfg.Pipeline,
		words,
		lemmatizer.NewClient(cfg.Lemmatizer, logger),
		fallback.New(),
		ledgerService,
		dailyService,
		txm,
	)

	// HTTP
	var wordsMiddleware middleware.Middleware
	if cfg.RateLimit.RequestsPerMinute > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		cleanup = limiter.Stop
		wordsMiddleware = limiter.Limit(cfg.RateLimit.RequestsPerMinute)
	}

	router := rest.NewRouter(rest.Handlers{
		Words:           rest.NewWordsHandler(pipelineService, logger),
		Stats:           rest.NewStatsHandler(statsService, logger),
		Health:          rest.NewHealthHandler(pool, cache, BuildVersion()),
		WordsMiddleware: wordsMiddleware,
	})

	var authMiddleware middleware.Middleware
	if cfg.Auth.Enabled() {
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
		authMiddleware = middleware.Auth(jwtManager)
	} else {
		logger.Warn("bearer token auth disabled: callers are identified by request user id")
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		authMiddleware,
		dataloader.Middleware(&dataloader.Repos{Lemma: lemmaRepo}),
	)(router), cleanup
}

// serve runs srv until ctx is cancelled or the listener fails, then drains
// in-flight requests within the shutdown timeout.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("shutting down http server", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("application stopped")
	return nil
}
