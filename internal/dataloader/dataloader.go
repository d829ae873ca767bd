// Package dataloader provides per-request DataLoaders that batch the durable
// lemma lookups issued by concurrent per-token storage into single SQL calls.
package dataloader

import (
	"context"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type lemmaRepo interface {
	GetByTexts(ctx context.Context, texts []string) ([]domain.Lemma, error)
}

// Repos holds all repositories required by DataLoaders.
type Repos struct {
	Lemma lemmaRepo
}

// Loaders contains the per-request DataLoader instances.
type Loaders struct {
	// LemmaByText resolves to nil when no lemma with that text exists.
	LemmaByText *dataloader.Loader[string, *domain.Lemma]
}

// NewLoaders creates a new set of DataLoaders backed by the given repositories.
// Must be called per-request.
func NewLoaders(repos *Repos) *Loaders {
	return &Loaders{
		LemmaByText: newLoader(newLemmaBatchFn(repos.Lemma)),
	}
}

// newLoader creates a dataloader.Loader with standard batch parameters.
// Results are not memoized: a lemma missing at the start of a request may be
// created by a later token of the same request.
func newLoader[V any](batchFn dataloader.BatchFunc[string, V]) *dataloader.Loader[string, V] {
	return dataloader.NewBatchedLoader(
		batchFn,
		dataloader.WithWait[string, V](wait),
		dataloader.WithBatchCapacity[string, V](maxBatch),
		dataloader.WithCache[string, V](&dataloader.NoCache[string, V]{}),
	)
}

func newLemmaBatchFn(repo lemmaRepo) dataloader.BatchFunc[string, *domain.Lemma] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.Lemma] {
		rows, err := repo.GetByTexts(ctx, dedupe(keys))
		if err != nil {
			return errorResults[*domain.Lemma](len(keys), err)
		}

		byText := make(map[string]*domain.Lemma, len(rows))
		for i := range rows {
			l := rows[i]
			byText[l.Text] = &l
		}

		results := make([]*dataloader.Result[*domain.Lemma], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Lemma]{Data: byText[key]}
		}
		return results
	}
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// errorResults creates n results all carrying the same error.
func errorResults[V any](n int, err error) []*dataloader.Result[V] {
	results := make([]*dataloader.Result[V], n)
	for i := range results {
		results[i] = &dataloader.Result[V]{Error: err}
	}
	return results
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context. Callers outside an HTTP
// request (tests, background jobs) have none and fall back to the repository.
func FromContext(ctx context.Context) (*Loaders, bool) {
	l, ok := ctx.Value(loadersKey).(*Loaders)
	return l, ok && l != nil
}
