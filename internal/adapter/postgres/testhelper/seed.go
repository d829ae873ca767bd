package testhelper

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

var userSeq atomic.Int64

func init() {
	userSeq.Store(time.Now().UnixNano() % 1_000_000_000)
}

// UniqueUserID returns a user id no other test in this run has used.
func UniqueUserID() int64 {
	return userSeq.Add(1)
}

// UniqueWord returns prefix followed by a short random letter suffix, so
// words never collide across tests sharing the database and cache.
func UniqueWord(prefix string) string {
	suffix := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return 'a' + (r - '0')
		}
		if r == '-' {
			return -1
		}
		return r
	}, uuid.New().String())
	return prefix + suffix[:10]
}

// SeedLemma inserts a lemma row and returns it.
func SeedLemma(t *testing.T, pool *pgxpool.Pool, text string, category domain.Category) domain.Lemma {
	t.Helper()

	l := domain.Lemma{Text: text, Category: category}
	err := pool.QueryRow(context.Background(),
		`INSERT INTO lemmas (text, category) VALUES ($1, $2) RETURNING id, created_at`,
		text, string(category),
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedLemma %q: %v", text, err)
	}

	return l
}

// CountRows returns the number of rows in table matching where (with args).
func CountRows(t *testing.T, pool *pgxpool.Pool, table, where string, args ...any) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE `+where, args...,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}

	return n
}
