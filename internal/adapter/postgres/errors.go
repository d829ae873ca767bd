package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// MapError converts pgx/pgconn errors to domain errors. key identifies the
// row (id, text, user id) in the message.
// context.DeadlineExceeded and context.Canceled are NOT mapped; they pass through.
func MapError(err error, entity string, key any) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s %v: %w", entity, key, err)
	}

	if errors.Is(err, pgx.ErrNoRows) || pgxscan.NotFound(err) {
		return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrAlreadyExists)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
		case codeCheckViolation:
			return fmt.Errorf("%s %v: %w", entity, key, domain.ErrValidation)
		}
	}

	return fmt.Errorf("%s %v: %w", entity, key, err)
}
