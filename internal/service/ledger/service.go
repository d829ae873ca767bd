// Package ledger maintains each user's cumulative lemma usage counts.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

type ledgerRepo interface {
	Get(ctx context.Context, userID int64) (*domain.UsageLedger, error)
	GetForUpdate(ctx context.Context, userID int64) (*domain.UsageLedger, error)
	EnsureExists(ctx context.Context, userID int64) error
	SaveHistory(ctx context.Context, userID int64, history map[string]int) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the Usage Ledger.
type Service struct {
	log     *slog.Logger
	ledgers ledgerRepo
	tx      txManager
}

// NewService creates a new Usage Ledger service.
func NewService(logger *slog.Logger, ledgers ledgerRepo, tx txManager) *Service {
	return &Service{
		log:     logger.With("service", "ledger"),
		ledgers: ledgers,
		tx:      tx,
	}
}

// MergeResult is the outcome of merging one sentence into a ledger.
type MergeResult struct {
	// NewlyLearned lists, sorted, the lemmas absent from the ledger before the merge.
	NewlyLearned []string
	// History is the merged ledger.
	History map[string]int
}

// MergeOccurrences adds counts to the user's ledger in one transaction. The
// ledger row is locked for the duration, so concurrent merges for the same
// user serialize and their sums commute.
func (s *Service) MergeOccurrences(ctx context.Context, userID int64, counts map[string]int) (*MergeResult, error) {
	var result *MergeResult

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.ledgers.EnsureExists(ctx, userID); err != nil {
			return fmt.Errorf("ensure ledger: %w", err)
		}

		l, err := s.ledgers.GetForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock ledger: %w", err)
		}

		// Must run before merge mutates the history.
		newly := newlyLearned(l.History, counts)
		merged := merge(l.History, counts)

		if err := s.ledgers.SaveHistory(ctx, userID, merged); err != nil {
			return fmt.Errorf("save ledger: %w", err)
		}

		result = &MergeResult{NewlyLearned: newly, History: merged}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("merge occurrences for user %d: %w", userID, err)
	}

	s.log.DebugContext(ctx, "ledger merged",
		slog.Int64("user_id", userID),
		slog.Int("lemmas", len(counts)),
		slog.Int("newly_learned", len(result.NewlyLearned)),
		slog.Int("total_unique", len(result.History)),
	)

	return result, nil
}

// History returns the user's ledger, empty when the user has none yet.
func (s *Service) History(ctx context.Context, userID int64) (map[string]int, error) {
	l, err := s.ledgers.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return map[string]int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ledger for user %d: %w", userID, err)
	}
	return l.History, nil
}

func newlyLearned(history, counts map[string]int) []string {
	out := []string{}
	for lemma, n := range counts {
		if n <= 0 {
			continue
		}
		if _, ok := history[lemma]; !ok {
			out = append(out, lemma)
		}
	}
	sort.Strings(out)
	return out
}

func merge(history, counts map[string]int) map[string]int {
	out := make(map[string]int, len(history)+len(counts))
	for lemma, n := range history {
		out[lemma] = n
	}
	for lemma, n := range counts {
		if n <= 0 {
			continue
		}
		out[lemma] += n
	}
	return out
}
