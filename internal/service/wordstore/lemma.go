package wordstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexitrack/internal/dataloader"
	"github.com/heartmarshall/lexitrack/internal/domain"
)

// ResolveOrCreateLemma returns the lemma stored under lemmaText, creating it
// with the category derived from posTag when it does not exist yet. Creation
// is idempotent across concurrent callers: the loser of a uniqueness race
// re-reads the winner's row. The lemma cache entry is refreshed whenever the
// durable store was consulted.
func (s *Service) ResolveOrCreateLemma(ctx context.Context, lemmaText, posTag string) (*domain.LemmaEntry, error) {
	text := domain.NormalizeText(lemmaText)
	if err := validateText("lemma", text); err != nil {
		return nil, err
	}

	cached, err := s.cache.GetLemma(ctx, text)
	if err != nil {
		s.cacheFailed(ctx, "get", text, err)
	}
	if cached != nil {
		return cached, nil
	}

	lemma, err := s.findLemma(ctx, text)
	if err != nil {
		return nil, err
	}

	if lemma == nil {
		lemma, err = s.createLemma(ctx, text, domain.CategoryFromTag(posTag))
		if err != nil {
			return nil, err
		}
	}

	entry := domain.LemmaEntry{LemmaID: lemma.ID, Text: lemma.Text, Category: lemma.Category}
	if err := s.cache.SetLemma(ctx, entry); err != nil {
		s.cacheFailed(ctx, "set", text, err)
	}

	return &entry, nil
}

// findLemma reads the lemma through the request's DataLoader when one is
// attached, so concurrent tokens share one query. Returns nil when absent.
func (s *Service) findLemma(ctx context.Context, text string) (*domain.Lemma, error) {
	if loaders, ok := dataloader.FromContext(ctx); ok {
		lemma, err := loaders.LemmaByText.Load(ctx, text)()
		if err != nil {
			return nil, fmt.Errorf("load lemma %q: %w", text, err)
		}
		return lemma, nil
	}

	lemma, err := s.lemmas.GetByText(ctx, text)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get lemma %q: %w", text, err)
	}
	return lemma, nil
}

func (s *Service) createLemma(ctx context.Context, text string, category domain.Category) (*domain.Lemma, error) {
	lemma, err := s.lemmas.Create(ctx, text, category)
	if err == nil {
		s.log.InfoContext(ctx, "lemma created",
			slog.String("lemma", text),
			slog.Int64("lemma_id", lemma.ID),
			slog.String("category", category.String()),
		)
		return lemma, nil
	}
	if !errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("create lemma %q: %w", text, err)
	}

	// Lost the race: read the winner directly, bypassing the loader.
	lemma, err = s.lemmas.GetByText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("get lemma %q after conflict: %w", text, err)
	}
	s.log.DebugContext(ctx, "lemma found after conflict", slog.String("lemma", text))
	return lemma, nil
}
