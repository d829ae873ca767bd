package pipeline

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/heartmarshall/lexitrack/internal/domain"
	"github.com/heartmarshall/lexitrack/internal/service/ledger"
)

// fakeWordStore keeps lemmas, surface links and the surface cache in memory.
type fakeWordStore struct {
	mu       sync.Mutex
	nextID   int64
	lemmas   map[string]domain.LemmaEntry
	links    map[string]int64
	cache    map[string]domain.SurfaceEntry
	failFor  map[string]error // lemma text -> error from ResolveOrCreateLemma
	resolves int
}

func newFakeWordStore() *fakeWordStore {
	return &fakeWordStore{
		lemmas:  map[string]domain.LemmaEntry{},
		links:   map[string]int64{},
		cache:   map[string]domain.SurfaceEntry{},
		failFor: map[string]error{},
	}
}

func (f *fakeWordStore) LookupSurface(_ context.Context, surfaceText string) (*domain.SurfaceEntry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.cache[domain.CleanToken(surfaceText)]
	if !ok {
		return nil, false
	}
	return &e, true
}

func (f *fakeWordStore) ResolveOrCreateLemma(_ context.Context, lemmaText, posTag string) (*domain.LemmaEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resolves++
	text := domain.NormalizeText(lemmaText)
	if err, ok := f.failFor[text]; ok {
		return nil, err
	}
	if e, ok := f.lemmas[text]; ok {
		return &e, nil
	}
	f.nextID++
	e := domain.LemmaEntry{LemmaID: f.nextID, Text: text, Category: domain.CategoryFromTag(posTag)}
	f.lemmas[text] = e
	return &e, nil
}

func (f *fakeWordStore) LinkSurfaceForm(_ context.Context, surfaceText, lemmaText string, lemmaID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	surface := domain.CleanToken(surfaceText)
	if surface == "" || strings.EqualFold(surface, lemmaText) {
		return nil
	}
	if _, ok := f.links[surface]; !ok {
		f.links[surface] = lemmaID
	}
	return nil
}

func (f *fakeWordStore) CacheSurface(_ context.Context, surfaceText, lemmaText string, lemmaID int64, category domain.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()
	surface := domain.CleanToken(surfaceText)
	if _, ok := f.cache[surface]; !ok {
		f.cache[surface] = domain.SurfaceEntry{LemmaID: lemmaID, Surface: surface, LemmaText: lemmaText, Category: category}
	}
}

// stubResolver returns canned tuples keyed by cleaned token.
type stubResolver struct {
	mu    sync.Mutex
	table map[string]domain.ResolvedToken
	err   error
	calls [][]string
}

func (r *stubResolver) Resolve(_ context.Context, tokens []string) ([]domain.ResolvedToken, error) {
	r.mu.Lock()
	r.calls = append(r.calls, append([]string(nil), tokens...))
	r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]domain.ResolvedToken, 0, len(tokens))
	for _, tok := range tokens {
		if rt, ok := r.table[domain.CleanToken(tok)]; ok {
			rt.Surface = tok
			out = append(out, rt)
			continue
		}
		out = append(out, domain.ResolvedToken{Surface: tok, POS: "NOUN"})
	}
	return out, nil
}

func lemmaOf(s string) *string { return &s }

// memLedger merges in memory with the same before/after semantics as the
// ledger service.
type memLedger struct {
	mu      sync.Mutex
	history map[int64]map[string]int
	err     error
	calls   int
}

func newMemLedger() *memLedger {
	return &memLedger{history: map[int64]map[string]int{}}
}

func (l *memLedger) MergeOccurrences(_ context.Context, userID int64, counts map[string]int) (*ledger.MergeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	h, ok := l.history[userID]
	if !ok {
		h = map[string]int{}
		l.history[userID] = h
	}
	newly := []string{}
	for k := range counts {
		if _, ok := h[k]; !ok {
			newly = append(newly, k)
		}
	}
	sort.Strings(newly)
	for k, v := range counts {
		h[k] += v
	}
	out := make(map[string]int, len(h))
	for k, v := range h {
		out[k] = v
	}
	return &ledger.MergeResult{NewlyLearned: newly, History: out}, nil
}

// memTx restores the in-memory ledger when the callback fails, mirroring a
// rolled back transaction.
type memTx struct {
	ledger *memLedger
	mu     sync.Mutex
	runs   int
}

func (m *memTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()

	snap := m.ledger.snapshot()
	if err := fn(ctx); err != nil {
		m.ledger.restore(snap)
		return err
	}
	return nil
}

func (l *memLedger) snapshot() map[int64]map[string]int {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[int64]map[string]int, len(l.history))
	for user, h := range l.history {
		cp := make(map[string]int, len(h))
		for k, v := range h {
			cp[k] = v
		}
		out[user] = cp
	}
	return out
}

func (l *memLedger) restore(history map[int64]map[string]int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.history = history
}

type memDaily struct {
	mu    sync.Mutex
	rows  map[int64]*domain.DailyStat
	err   error
	calls int
}

func newMemDaily() *memDaily {
	return &memDaily{rows: map[int64]*domain.DailyStat{}}
}

func (d *memDaily) IncrementToday(_ context.Context, userID int64, totalDelta, uniqueDelta int) (*domain.DailyStat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	row, ok := d.rows[userID]
	if !ok {
		row = &domain.DailyStat{UserID: userID}
		d.rows[userID] = row
	}
	row.TotalWords += totalDelta
	row.UniqueWords += uniqueDelta
	cp := *row
	return &cp, nil
}

var errStoreDown = errors.New("store down")
