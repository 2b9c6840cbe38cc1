package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned by writes that matched no row.
	ErrNotFound = errors.New("record not found")
	// ErrForeignKey means a referenced row does not exist.
	ErrForeignKey = errors.New("referenced record does not exist")
	// ErrCheckViolation means a CHECK constraint rejected the row.
	ErrCheckViolation = errors.New("check constraint violated")
)

// DuplicateError reports a unique constraint violation.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate key violates unique constraint %q", e.Constraint)
}

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

// IsDuplicate reports whether err is a unique violation on the given constraint.
// An empty constraint matches any unique violation.
func IsDuplicate(err error, constraint string) bool {
	var dupErr *DuplicateError
	if !errors.As(err, &dupErr) {
		return false
	}
	return constraint == "" || dupErr.Constraint == constraint
}

// translateError maps driver errors to repository errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		return &DuplicateError{Constraint: pqErr.Constraint}
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKey, pqErr.Constraint)
	case pqCheckViolation:
		return fmt.Errorf("%w: %s", ErrCheckViolation, pqErr.Constraint)
	default:
		return err
	}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type PostgresRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPostgresRepository(db *sql.DB, logger zerolog.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresRepository) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, opts)
}

func (r *PostgresRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

func (r *PostgresRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

// execAffecting runs a write and returns ErrNotFound when no row matched.
func (r *PostgresRepository) execAffecting(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return translateError(err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PostgresRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&total)
	return total, err
}
