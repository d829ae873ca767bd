// Package surface implements the Surface Form repository using PostgreSQL.
// Surface forms are write-only here: reads go through the word cache.
package surface

import (
	"context"
	"fmt"

	postgres "github.com/heartmarshall/lexitrack/internal/adapter/postgres"
)

const table = "surface_forms"

// Repo provides surface form persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new surface form repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// CreateIfAbsent links text to lemmaID unless a surface form with the same
// text already exists. The first writer wins; created reports whether this
// call inserted the row.
func (r *Repo) CreateIfAbsent(ctx context.Context, lemmaID int64, text string) (created bool, err error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("lemma_id", "text").
		Values(lemmaID, text).
		Suffix("ON CONFLICT (text) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build surface form insert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return false, postgres.MapError(err, "surface_form", text)
	}

	return tag.RowsAffected() == 1, nil
}
