// Package pipeline orchestrates sentence processing: tokenize, resolve
// lemmas (falling back to local rules when the lemmatizer is down), store
// words, then aggregate usage into the ledger and daily counters.
package pipeline

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/lexitrack/internal/config"
	"github.com/heartmarshall/lexitrack/internal/domain"
	"github.com/heartmarshall/lexitrack/internal/service/ledger"
)

type wordStore interface {
	LookupSurface(ctx context.Context, surfaceText string) (*domain.SurfaceEntry, bool)
	ResolveOrCreateLemma(ctx context.Context, lemmaText, posTag string) (*domain.LemmaEntry, error)
	LinkSurfaceForm(ctx context.Context, surfaceText, lemmaText string, lemmaID int64) error
	CacheSurface(ctx context.Context, surfaceText, lemmaText string, lemmaID int64, category domain.Category)
}

type lemmaResolver interface {
	Resolve(ctx context.Context, tokens []string) ([]domain.ResolvedToken, error)
}

type fallbackLemmatizer interface {
	Resolve(tokens []string) []domain.ResolvedToken
}

type usageLedger interface {
	MergeOccurrences(ctx context.Context, userID int64, counts map[string]int) (*ledger.MergeResult, error)
}

type dailyAggregator interface {
	IncrementToday(ctx context.Context, userID int64, totalDelta, uniqueDelta int) (*domain.DailyStat, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the pipeline orchestrator.
type Service struct {
	log      *slog.Logger
	cfg      config.PipelineConfig
	words    wordStore
	resolver lemmaResolver
	fallback fallbackLemmatizer
	ledger   usageLedger
	daily    dailyAggregator
	tx       txManager
	tracer   trace.Tracer
}

// NewService creates a new pipeline service.
func NewService(
	logger *slog.Logger,
	cfg config.PipelineConfig,
	words wordStore,
	resolver lemmaResolver,
	fallback fallbackLemmatizer,
	ledger usageLedger,
	daily dailyAggregator,
	tx txManager,
) *Service {
	if cfg.StoreConcurrency < 1 {
		cfg.StoreConcurrency = 1
	}
	return &Service{
		log:      logger.With("service", "pipeline"),
		cfg:      cfg,
		words:    words,
		resolver: resolver,
		fallback: fallback,
		ledger:   ledger,
		daily:    daily,
		tx:       tx,
		tracer:   otel.Tracer("lexitrack/pipeline"),
	}
}
