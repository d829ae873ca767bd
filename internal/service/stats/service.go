// Package stats answers per-user activity queries over a window of days.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/lexitrack/internal/domain"
	"github.com/heartmarshall/lexitrack/internal/service/dailystats"
)

const (
	DefaultDays = 7
	MinDays     = 1
	MaxDays     = 365
)

type dailyStatRepo interface {
	ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyStat, error)
}

type historyReader interface {
	History(ctx context.Context, userID int64) (map[string]int, error)
}

// Service implements the stats query.
type Service struct {
	log    *slog.Logger
	daily  dailyStatRepo
	ledger historyReader
	now    func() time.Time
}

// NewService creates a new stats service.
func NewService(logger *slog.Logger, daily dailyStatRepo, ledger historyReader) *Service {
	return &Service{
		log:    logger.With("service", "stats"),
		daily:  daily,
		ledger: ledger,
		now:    time.Now,
	}
}

// WithClock replaces the clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Get returns the user's per-day history for the last days days (today
// included), oldest first and zero-filled, plus summary totals. days outside
// [1, 365] is rejected before any store access.
func (s *Service) Get(ctx context.Context, userID int64, days int) (*domain.UserStats, error) {
	if days < MinDays || days > MaxDays {
		return nil, domain.NewValidationError("days", "must be between 1 and 365")
	}

	to := dailystats.StartOfDay(s.now())
	from := to.AddDate(0, 0, -(days - 1))

	rows, err := s.daily.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily stats for user %d: %w", userID, err)
	}

	byDate := make(map[string]domain.DailyStat, len(rows))
	for _, r := range rows {
		byDate[r.Date.Format(time.DateOnly)] = r
	}

	result := &domain.UserStats{
		UserID:        userID,
		PeriodDays:    days,
		UniqueHistory: make([]domain.DayCount, 0, days),
		TotalHistory:  make([]domain.DayCount, 0, days),
	}

	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i).Format(time.DateOnly)
		r, ok := byDate[date]
		if ok {
			result.Summary.TotalUniqueWords += r.UniqueWords
			result.Summary.TotalWordsProcessed += r.TotalWords
			result.Summary.DaysWithActivity++
		}
		result.UniqueHistory = append(result.UniqueHistory, domain.DayCount{Date: date, Count: r.UniqueWords})
		result.TotalHistory = append(result.TotalHistory, domain.DayCount{Date: date, Count: r.TotalWords})
	}

	history, err := s.ledger.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read ledger for user %d: %w", userID, err)
	}
	result.Summary.AllTimeUniqueWords = len(history)

	return result, nil
}
