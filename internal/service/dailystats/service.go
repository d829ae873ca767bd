// Package dailystats aggregates per-user daily word counters.
package dailystats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

type dailyStatRepo interface {
	Increment(ctx context.Context, userID int64, date time.Time, totalDelta, uniqueDelta int) (*domain.DailyStat, error)
}

// Service implements the Daily Stats Aggregator. "Today" is the calendar
// date of the server's local clock.
type Service struct {
	log   *slog.Logger
	stats dailyStatRepo
	now   func() time.Time
}

// NewService creates a new Daily Stats service using the wall clock.
func NewService(logger *slog.Logger, stats dailyStatRepo) *Service {
	return &Service{
		log:   logger.With("service", "dailystats"),
		stats: stats,
		now:   time.Now,
	}
}

// WithClock replaces the clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Today returns the start of the current local calendar day.
func (s *Service) Today() time.Time {
	return StartOfDay(s.now())
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IncrementToday adds the deltas to the user's counters for today, creating
// the row on first use. Negative deltas are rejected.
func (s *Service) IncrementToday(ctx context.Context, userID int64, totalDelta, uniqueDelta int) (*domain.DailyStat, error) {
	if totalDelta < 0 || uniqueDelta < 0 {
		return nil, domain.NewValidationError("delta", "must be non-negative")
	}

	today := s.Today()
	stat, err := s.stats.Increment(ctx, userID, today, totalDelta, uniqueDelta)
	if err != nil {
		return nil, fmt.Errorf("increment daily stat for user %d: %w", userID, err)
	}

	s.log.DebugContext(ctx, "daily stat incremented",
		slog.Int64("user_id", userID),
		slog.String("date", today.Format(time.DateOnly)),
		slog.Int("total_words", stat.TotalWords),
		slog.Int("unique_words", stat.UniqueWords),
	)

	return stat, nil
}
