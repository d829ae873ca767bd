// Package ledger implements the Usage Ledger repository using PostgreSQL.
// Each user owns exactly one row whose history column is a JSONB object
// mapping lemma text to a cumulative occurrence count.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	"github.com/heartmarshall/lexitrack/internal/domain"
)

const table = "usage_ledgers"

var columns = []string{"id", "user_id", "history", "created_at", "updated_at"}

type row struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	History   []byte    `db:"history"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r row) toDomain() (*domain.UsageLedger, error) {
	history := map[string]int{}
	if len(r.History) > 0 {
		if err := json.Unmarshal(r.History, &history); err != nil {
			return nil, fmt.Errorf("decode usage_ledger %d history: %w", r.UserID, err)
		}
	}
	return &domain.UsageLedger{
		ID:        r.ID,
		UserID:    r.UserID,
		History:   history,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Repo provides usage ledger persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new usage ledger repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Get returns the user's ledger. Returns domain.ErrNotFound if the user has
// never processed a sentence.
func (r *Repo) Get(ctx context.Context, userID int64) (*domain.UsageLedger, error) {
	return r.get(ctx, userID, false)
}

// GetForUpdate returns the user's ledger and locks the row until the
// surrounding transaction ends. Outside TxManager.RunInTx the lock would be
// released immediately, so that case fails with postgres.ErrNoTx.
func (r *Repo) GetForUpdate(ctx context.Context, userID int64) (*domain.UsageLedger, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("lock usage_ledger %d: %w", userID, postgres.ErrNoTx)
	}
	return r.get(ctx, userID, true)
}

func (r *Repo) get(ctx context.Context, userID int64, lock bool) (*domain.UsageLedger, error) {
	b := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build usage_ledger query: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "usage_ledger", userID)
	}

	return out.toDomain()
}

// EnsureExists creates an empty ledger row for the user if none exists yet.
// Safe under concurrent callers.
func (r *Repo) EnsureExists(ctx context.Context, userID int64) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id").
		Values(userID).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build usage_ledger insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "usage_ledger", userID)
	}
	return nil
}

// SaveHistory overwrites the user's history with the already merged map.
func (r *Repo) SaveHistory(ctx context.Context, userID int64, history map[string]int) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode usage_ledger %d history: %w", userID, err)
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("history", raw).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build usage_ledger update: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "usage_ledger", userID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("usage_ledger %d: %w", userID, domain.ErrNotFound)
	}

	return nil
}
