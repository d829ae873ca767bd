// Package dailystat implements the Daily Stat repository using PostgreSQL.
package dailystat

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	"github.com/heartmarshall/lexitrack/internal/domain"
)

const table = "daily_stats"

var columns = []string{"id", "user_id", "date", "total_words", "unique_words"}

type row struct {
	ID          int64     `db:"id"`
	UserID      int64     `db:"user_id"`
	Date        time.Time `db:"date"`
	TotalWords  int       `db:"total_words"`
	UniqueWords int       `db:"unique_words"`
}

func (r row) toDomain() domain.DailyStat {
	return domain.DailyStat{
		ID:          r.ID,
		UserID:      r.UserID,
		Date:        r.Date,
		TotalWords:  r.TotalWords,
		UniqueWords: r.UniqueWords,
	}
}

// Repo provides daily stat persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new daily stat repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Increment adds the deltas to the (userID, date) row, creating it with the
// deltas as initial values if absent. The upsert is a single statement, so
// concurrent increments for the same day are never lost.
func (r *Repo) Increment(ctx context.Context, userID int64, date time.Time, totalDelta, uniqueDelta int) (*domain.DailyStat, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("user_id", "date", "total_words", "unique_words").
		Values(userID, date, totalDelta, uniqueDelta).
		Suffix(`ON CONFLICT (user_id, date) DO UPDATE SET
			total_words  = daily_stats.total_words  + EXCLUDED.total_words,
			unique_words = daily_stats.unique_words + EXCLUDED.unique_words,
			updated_at   = now()
		RETURNING id, user_id, date, total_words, unique_words`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily_stat upsert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, "daily_stat", userID)
	}

	s := out.toDomain()
	return &s, nil
}

// ListRange returns the user's rows with from <= date <= to, oldest first.
func (r *Repo) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyStat, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build daily_stat range query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list daily_stats: %w", err)
	}

	out := make([]domain.DailyStat, len(rows))
	for i, rw := range rows {
		out[i] = rw.toDomain()
	}
	return out, nil
}
