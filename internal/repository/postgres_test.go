package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext mirrors testing.T.Context (Go 1.24+): the context is canceled
// when the test finishes.
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

var testLogger = zerolog.Nop()

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("boom")
	assert.Same(t, plain, translateError(plain))

	dup := translateError(&pq.Error{Code: "23505", Constraint: CoursesCodeKey})
	assert.True(t, IsDuplicate(dup, CoursesCodeKey))
	assert.True(t, IsDuplicate(dup, ""))
	assert.False(t, IsDuplicate(dup, UsersUsernameKey))

	fk := translateError(&pq.Error{Code: "23503", Constraint: "enrollments_student_id_fkey"})
	assert.ErrorIs(t, fk, ErrForeignKey)
	assert.Contains(t, fk.Error(), "enrollments_student_id_fkey")

	check := translateError(&pq.Error{Code: "23514", Constraint: "grades_score_check"})
	assert.ErrorIs(t, check, ErrCheckViolation)

	other := &pq.Error{Code: "40001"}
	assert.Same(t, error(other), translateError(other))
}

func TestExecAffecting_NoRows(t *testing.T) {
	db, mock := newMock(t)
	repo := NewStudentRepository(db, testLogger)

	mock.ExpectExec(`DELETE FROM students WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(testContext(t), 7), ErrNotFound)
}
