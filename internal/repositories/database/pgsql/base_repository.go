package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewInternalError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewInternalError("failed to rollback transaction", err)
	}
	return nil
}

// inTx runs fn inside a transaction, committing when fn succeeds.
func (r *BaseRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := fn(tx); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

func isUniqueViolation(err error) bool {
	code, _ := pgErrorCode(err)
	return code == pgUniqueViolation
}

// insertError maps constraint violations of an INSERT to application errors.
func insertError(err error, entity, id string) error {
	switch code, constraint := pgErrorCode(err); code {
	case pgUniqueViolation:
		return apperrors.NewConflictError(entity + " " + id + " already exists")
	case pgForeignKeyViolation:
		return apperrors.NewValidationFailedError(entity + " references a missing record (" + constraint + ")")
	}
	return fmt.Errorf("failed to save %s %s: %w", entity, id, err)
}

// findError maps pgx.ErrNoRows to a not-found error.
func findError(err error, entity, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(entity + " " + id + " not found")
	}
	return fmt.Errorf("failed to find %s %s: %w", entity, id, err)
}

// expectOneRow turns an UPDATE that matched nothing into a not-found error.
func expectOneRow(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(entity + " " + id + " not found")
	}
	return nil
}

// expectSwapped turns a compare-and-swap UPDATE that matched nothing into a
// concurrent modification error.
func expectSwapped(tag pgconn.CommandTag, entity, id string) error {
	if tag.RowsAffected() == 0 {
		return apperrors.NewConcurrentModificationError(entity, id)
	}
	return nil
}

// conditions accumulates AND-ed WHERE clauses with positional arguments.
type conditions struct {
	clauses []string
	args    []any
}

// bind appends an argument and returns its placeholder.
func (c *conditions) bind(arg any) string {
	c.args = append(c.args, arg)
	return "$" + strconv.Itoa(len(c.args))
}

// add appends clause with "?" replaced by the placeholder of arg.
func (c *conditions) add(clause string, arg any) {
	c.clauses = append(c.clauses, strings.Replace(clause, "?", c.bind(arg), 1))
}

// addIf calls add only when value is non-empty.
func (c *conditions) addIf(clause string, value string) {
	if value != "" {
		c.add(clause, value)
	}
}

func (c *conditions) where() string {
	return " WHERE " + strings.Join(c.clauses, " AND ")
}
