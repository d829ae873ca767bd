package wordstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

// LinkSurfaceForm records that surfaceText inflects the lemma. Surface text is
// cleaned (punctuation stripped, lowercased) before storage. It is a no-op
// when the cleaned surface equals the lemma text, and the first writer of a
// surface form wins.
func (s *Service) LinkSurfaceForm(ctx context.Context, surfaceText, lemmaText string, lemmaID int64) error {
	surface := domain.CleanToken(surfaceText)
	if surface == "" || strings.EqualFold(surface, domain.NormalizeText(lemmaText)) {
		return nil
	}
	if err := validateText("surface", surface); err != nil {
		return err
	}

	created, err := s.surfaces.CreateIfAbsent(ctx, lemmaID, surface)
	if err != nil {
		return fmt.Errorf("link surface %q: %w", surface, err)
	}
	if created {
		s.log.DebugContext(ctx, "surface form linked",
			slog.String("surface", surface),
			slog.Int64("lemma_id", lemmaID),
		)
	}
	return nil
}

// CacheSurface writes the surface entry unless one is already cached. An
// existing entry is never refreshed. Cache failures are logged only.
func (s *Service) CacheSurface(ctx context.Context, surfaceText, lemmaText string, lemmaID int64, category domain.Category) {
	surface := domain.CleanToken(surfaceText)
	if surface == "" {
		return
	}

	_, err := s.cache.SetSurfaceIfAbsent(ctx, domain.SurfaceEntry{
		LemmaID:   lemmaID,
		Surface:   surface,
		LemmaText: domain.NormalizeText(lemmaText),
		Category:  category,
	})
	if err != nil {
		s.cacheFailed(ctx, "set surface", surface, err)
	}
}

// LookupSurface probes the cache for a previously resolved surface form.
// Cache errors degrade to a miss.
func (s *Service) LookupSurface(ctx context.Context, surfaceText string) (*domain.SurfaceEntry, bool) {
	surface := domain.CleanToken(surfaceText)
	if surface == "" {
		return nil, false
	}

	e, err := s.cache.GetSurface(ctx, surface)
	if err != nil {
		s.cacheFailed(ctx, "get surface", surface, err)
		return nil, false
	}
	return e, e != nil
}
