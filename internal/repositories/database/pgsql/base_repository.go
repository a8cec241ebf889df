package pgsql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes surfaced to callers.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
	pgStringTooLong    = "22001"
	pgFKViolation      = "23503"
)

// PgxPool is the subset of *pgxpool.Pool used by the repositories.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool PgxPool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// WithTx runs fn inside a transaction, committing on success and rolling back otherwise.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = r.Rollback(ctx, tx)
		return err
	}
	return r.Commit(ctx, tx)
}

// mapError translates driver errors into the application taxonomy.
// table is used to derive the field name from unique constraint names.
func mapError(err error, table string, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.NewConflictError(apperrors.UniqueFieldMessage(pgErr.ConstraintName, table))
		case pgNotNullViolation, pgCheckViolation, pgStringTooLong:
			return apperrors.NewBadRequestError(validationMessage(pgErr))
		case pgFKViolation:
			return apperrors.NewBadRequestError("Referenced record does not exist")
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func validationMessage(pgErr *pgconn.PgError) string {
	switch {
	case pgErr.Code == pgNotNullViolation && pgErr.ColumnName != "":
		return pgErr.ColumnName + " is required"
	case pgErr.Code == pgStringTooLong:
		return "Value too long"
	default:
		return "Invalid value"
	}
}
