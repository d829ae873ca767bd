package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/lexitrack/internal/domain"
	"github.com/heartmarshall/lexitrack/internal/service/ledger"
)

// item is one resolved token travelling through the pipeline.
type item struct {
	surface string
	lemma   string // empty when the surface form is already canonical
	pos     string
	entry   *domain.LemmaEntry
	cached  bool
	stored  bool
}

// Process runs a sentence through Tokenized, Resolving, Stored, Aggregated
// and Responded in that order. Input errors are returned before any side
// effect. Lemmatizer outages are absorbed by the fallback rule set; a
// per-token storage failure drops that token. The ledger merge and the daily
// increment commit together; a failure in either fails the whole call and
// leaves both untouched.
func (s *Service) Process(ctx context.Context, input ProcessInput) (result *ProcessResult, err error) {
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "pipeline.Process",
		trace.WithAttributes(attribute.Int64("user.id", input.UserID)))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	// Tokenized
	if err := input.Validate(s.cfg.MaxSentenceLength); err != nil {
		return nil, err
	}
	tokens := domain.Tokenize(input.Sentence)
	if len(tokens) == 0 {
		return nil, domain.NewValidationError("sentence", "required")
	}
	span.SetAttributes(attribute.Int("pipeline.tokens", len(tokens)))

	// Resolving
	items, fallbackUsed, err := s.resolve(ctx, tokens)
	if err != nil {
		return nil, err
	}

	// Stored
	skipped := s.store(ctx, items)

	// Aggregated
	counts, stored := countLemmas(items)
	var (
		merged *ledger.MergeResult
		today  *domain.DailyStat
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var txErr error
		if merged, txErr = s.ledger.MergeOccurrences(ctx, input.UserID, counts); txErr != nil {
			return fmt.Errorf("merge usage ledger: %w", txErr)
		}
		if today, txErr = s.daily.IncrementToday(ctx, input.UserID, stored, len(counts)); txErr != nil {
			return fmt.Errorf("increment daily stats: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Responded
	processor := ProcessorLemmatizer
	if fallbackUsed {
		processor = ProcessorFallback
	}

	result = &ProcessResult{
		Success:          true,
		ProcessingTimeMs: elapsedMs(start),
		Processor:        processor,
		Processed: ProcessedSummary{
			TotalWords:        len(tokens),
			UniqueWordsCount:  len(counts),
			UniqueWords:       sortedKeys(counts),
			NewlyLearnedWords: merged.NewlyLearned,
			NewlyLearnedCount: len(merged.NewlyLearned),
			SkippedTokens:     skipped,
		},
		User: UserSummary{
			UserID:                  input.UserID,
			TotalUniqueWordsLearned: len(merged.History),
			TodayWordsProcessed:     today.TotalWords,
			TodayUniqueWords:        today.UniqueWords,
			MostUsedWords:           domain.TopWords(merged.History, s.cfg.MostUsedLimit),
		},
		FallbackUsed: fallbackUsed,
	}

	s.log.InfoContext(ctx, "sentence processed",
		slog.Int64("user_id", input.UserID),
		slog.Int("tokens", len(tokens)),
		slog.Int("lemmas", len(counts)),
		slog.Int("newly_learned", len(merged.NewlyLearned)),
		slog.Int("skipped", skipped),
		slog.String("processor", processor),
		slog.Float64("took_ms", result.ProcessingTimeMs),
	)

	return result, nil
}

// resolve serves tokens from the surface cache where possible and sends the
// rest to the lemmatizer in one call, switching to the fallback rule set when
// the lemmatizer is unavailable.
func (s *Service) resolve(ctx context.Context, tokens []string) ([]*item, bool, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.resolve")
	defer span.End()

	items := make([]*item, 0, len(tokens))
	var uncached []string
	for _, tok := range tokens {
		if e, ok := s.words.LookupSurface(ctx, tok); ok {
			items = append(items, &item{
				surface: tok,
				lemma:   e.LemmaText,
				entry:   &domain.LemmaEntry{LemmaID: e.LemmaID, Text: e.LemmaText, Category: e.Category},
				cached:  true,
			})
			continue
		}
		uncached = append(uncached, tok)
	}
	span.SetAttributes(
		attribute.Int("pipeline.cached", len(items)),
		attribute.Int("pipeline.uncached", len(uncached)),
	)

	if len(uncached) == 0 {
		return items, false, nil
	}

	fallbackUsed := false
	resolved, err := s.resolver.Resolve(ctx, uncached)
	if err != nil {
		if !errors.Is(err, domain.ErrServiceUnavailable) {
			return nil, false, fmt.Errorf("resolve lemmas: %w", err)
		}
		s.log.WarnContext(ctx, "lemmatizer unavailable, using fallback",
			slog.Int("tokens", len(uncached)),
			slog.String("error", err.Error()),
		)
		resolved = s.fallback.Resolve(uncached)
		fallbackUsed = true
	}
	span.SetAttributes(attribute.Bool("pipeline.fallback", fallbackUsed))

	for _, rt := range resolved {
		it := &item{surface: rt.Surface, pos: rt.POS}
		if rt.HasLemma() {
			it.lemma = *rt.Lemma
		}
		items = append(items, it)
	}

	return items, fallbackUsed, nil
}

// store persists every uncached item that has a lemma, with bounded
// concurrency. It returns the number of items dropped because of a storage
// failure.
func (s *Service) store(ctx context.Context, items []*item) int {
	ctx, span := s.tracer.Start(ctx, "pipeline.store")
	defer span.End()

	var g errgroup.Group
	g.SetLimit(s.cfg.StoreConcurrency)

	for _, it := range items {
		if it.lemma == "" {
			continue
		}
		if it.cached {
			it.stored = true
			continue
		}
		g.Go(func() error {
			s.storeItem(ctx, it)
			return nil
		})
	}
	_ = g.Wait()

	skipped := 0
	for _, it := range items {
		if it.lemma != "" && !it.stored {
			skipped++
		}
	}
	span.SetAttributes(attribute.Int("pipeline.skipped", skipped))
	return skipped
}

func (s *Service) storeItem(ctx context.Context, it *item) {
	entry, err := s.words.ResolveOrCreateLemma(ctx, it.lemma, it.pos)
	if err != nil {
		s.tokenFailed(ctx, it, err)
		return
	}

	if err := s.words.LinkSurfaceForm(ctx, it.surface, entry.Text, entry.LemmaID); err != nil {
		s.tokenFailed(ctx, it, err)
		return
	}

	s.words.CacheSurface(ctx, it.surface, entry.Text, entry.LemmaID, entry.Category)

	it.entry = entry
	it.stored = true
}

func (s *Service) tokenFailed(ctx context.Context, it *item, err error) {
	s.log.ErrorContext(ctx, "token skipped: store failure",
		slog.String("token", it.surface),
		slog.String("lemma", it.lemma),
		slog.String("error", err.Error()),
	)
}

// countLemmas returns occurrences per stored lemma and the number of stored
// tokens.
func countLemmas(items []*item) (map[string]int, int) {
	counts := make(map[string]int)
	stored := 0
	for _, it := range items {
		if !it.stored {
			continue
		}
		counts[it.entry.Text]++
		stored++
	}
	return counts, stored
}

func sortedKeys(m map[string]int) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func elapsedMs(start time.Time) float64 {
	return math.Round(float64(time.Since(start).Microseconds())/10) / 100
}
