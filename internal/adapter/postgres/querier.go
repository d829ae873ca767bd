package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNoTx is returned by operations that take row locks outside RunInTx.
var ErrNoTx = errors.New("operation requires a transaction")

// Querier is satisfied by *pgxpool.Pool, pgx.Tx and pgxmock pools, so every
// repository runs unchanged inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

func withTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txCtxKey{}, tx)
}

// InTx reports whether ctx carries a transaction opened by RunInTx.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return ok
}

// QuerierFromCtx returns the RunInTx transaction carried by ctx, or fallback
// (normally the pool) when there is none.
func QuerierFromCtx(ctx context.Context, fallback Querier) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return fallback
}
