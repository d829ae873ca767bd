package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postgres "github.com/heartmarshall/lexitrack/internal/adapter/postgres"
	ledgerrepo "github.com/heartmarshall/lexitrack/internal/adapter/postgres/ledger"
	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexitrack/internal/service/ledger"
)

func TestMergeOccurrences_ConcurrentMergesCommute(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	svc := ledger.NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		ledgerrepo.New(pool),
		postgres.NewTxManager(pool),
	)
	userID := testhelper.UniqueUserID()
	ctx := context.Background()

	merges := []map[string]int{
		{"a": 2},
		{"a": 3, "b": 1},
		{"a": 1},
	}

	var wg sync.WaitGroup
	for _, m := range merges {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.MergeOccurrences(ctx, userID, m)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := svc.History(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 6, "b": 1}, got)
}

func TestMergeOccurrences_NewlyLearnedAcrossCalls(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	svc := ledger.NewService(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		ledgerrepo.New(pool),
		postgres.NewTxManager(pool),
	)
	userID := testhelper.UniqueUserID()
	ctx := context.Background()

	first, err := svc.MergeOccurrences(ctx, userID, map[string]int{"cat": 1})
	require.NoError(t, err)
	assert.Len(t, first.NewlyLearned, 1)

	second, err := svc.MergeOccurrences(ctx, userID, map[string]int{"cat": 1})
	require.NoError(t, err)
	assert.Empty(t, second.NewlyLearned)
}
