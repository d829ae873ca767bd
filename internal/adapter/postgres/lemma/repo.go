// Package lemma implements the Lemma repository using PostgreSQL.
// Lemma rows are insert-only: the unique constraint on text is what makes
// concurrent creation safe.
package lemma

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	"github.com/heartmarshall/lexitrack/internal/domain"
)

const table = "lemmas"

var columns = []string{"id", "text", "category", "created_at"}

type row struct {
	ID        int64     `db:"id"`
	Text      string    `db:"text"`
	Category  string    `db:"category"`
	CreatedAt time.Time `db:"created_at"`
}

func (r row) toDomain() domain.Lemma {
	return domain.Lemma{
		ID:        r.ID,
		Text:      r.Text,
		Category:  domain.Category(r.Category),
		CreatedAt: r.CreatedAt,
	}
}

// Repo provides lemma persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new lemma repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByText returns the lemma with the given (normalized) text.
// Returns domain.ErrNotFound if no such lemma exists.
func (r *Repo) GetByText(ctx context.Context, text string) (*domain.Lemma, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"text": text}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lemma query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "lemma", text)
	}

	l := out.toDomain()
	return &l, nil
}

// GetByTexts returns every lemma whose text is in texts, in no particular order.
// Missing texts are simply absent from the result.
func (r *Repo) GetByTexts(ctx context.Context, texts []string) ([]domain.Lemma, error) {
	if len(texts) == 0 {
		return []domain.Lemma{}, nil
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"text": texts}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lemma batch query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lemmas: %w", err)
	}

	out := make([]domain.Lemma, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}

// Create inserts a new lemma. Returns domain.ErrAlreadyExists when another
// writer created the same text first, and a validation error for a category
// outside the lemmas.category check constraint.
func (r *Repo) Create(ctx context.Context, text string, category domain.Category) (*domain.Lemma, error) {
	if !category.IsValid() {
		return nil, domain.NewValidationError("category", fmt.Sprintf("unknown category %q", category))
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("text", "category").
		Values(text, string(category)).
		Suffix("RETURNING id, text, category, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lemma insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "lemma", text)
	}

	l := out.toDomain()
	return &l, nil
}
