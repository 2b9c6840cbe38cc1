package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
)

func TestEnrollmentRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db, testLogger)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO enrollments`).
		WithArgs(int64(1), int64(2), now).
		WillReturnError(&pq.Error{Code: "23505", Constraint: EnrollmentsStudentCourseKey})

	err := repo.Create(testContext(t), &models.Enrollment{StudentID: 1, CourseID: 2, EnrolledAt: now})
	assert.True(t, IsDuplicate(err, EnrollmentsStudentCourseKey))
}

func TestEnrollmentRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewEnrollmentRepository(db, testLogger)

	mock.ExpectQuery(`INSERT INTO enrollments`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	enrollment := &models.Enrollment{StudentID: 1, CourseID: 2, EnrolledAt: time.Now()}
	require.NoError(t, repo.Create(testContext(t), enrollment))
	assert.Equal(t, int64(11), enrollment.ID)
}
