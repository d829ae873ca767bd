// Package wordstore owns the lifecycle of lemmas and surface forms and the
// cache entries derived from them. Lookups are cache-aside: Redis first, then
// PostgreSQL, populating Redis from the durable row.
package wordstore

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

type lemmaRepo interface {
	GetByText(ctx context.Context, text string) (*domain.Lemma, error)
	Create(ctx context.Context, text string, category domain.Category) (*domain.Lemma, error)
}

type surfaceRepo interface {
	CreateIfAbsent(ctx context.Context, lemmaID int64, text string) (bool, error)
}

type wordCache interface {
	GetLemma(ctx context.Context, text string) (*domain.LemmaEntry, error)
	SetLemma(ctx context.Context, e domain.LemmaEntry) error
	GetSurface(ctx context.Context, surface string) (*domain.SurfaceEntry, error)
	SetSurfaceIfAbsent(ctx context.Context, e domain.SurfaceEntry) (bool, error)
}

// Service implements the Word Store.
type Service struct {
	log      *slog.Logger
	lemmas   lemmaRepo
	surfaces surfaceRepo
	cache    wordCache
}

// NewService creates a new Word Store service.
func NewService(
	logger *slog.Logger,
	lemmas lemmaRepo,
	surfaces surfaceRepo,
	cache wordCache,
) *Service {
	return &Service{
		log:      logger.With("service", "wordstore"),
		lemmas:   lemmas,
		surfaces: surfaces,
		cache:    cache,
	}
}

func validateText(field, text string) error {
	if text == "" {
		return domain.NewValidationError(field, "required")
	}
	if utf8.RuneCountInString(text) > domain.MaxWordLength {
		return domain.NewValidationError(field, "max 50 characters")
	}
	return nil
}

func (s *Service) cacheFailed(ctx context.Context, op, key string, err error) {
	s.log.WarnContext(ctx, "word cache "+op+" failed",
		slog.String("key", key),
		slog.String("error", err.Error()),
	)
}
