package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
)

type enrollmentFixture struct {
	svc         EnrollmentService
	students    *fakeStudentRepo
	courses     *fakeCourseRepo
	enrollments *fakeEnrollmentRepo
	publisher   *fakePublisher
}

func newEnrollmentFixture(t *testing.T) *enrollmentFixture {
	t.Helper()

	f := &enrollmentFixture{
		students:    newFakeStudentRepo(),
		courses:     newFakeCourseRepo(),
		enrollments: newFakeEnrollmentRepo(),
		publisher:   &fakePublisher{},
	}
	ctx := context.Background()
	require.NoError(t, f.students.Create(ctx, &models.Student{Name: "Ann", Email: "ann@example.com"}))
	require.NoError(t, f.courses.Create(ctx, &models.Course{Title: "Algebra", Code: "MATH101"}))

	f.svc = NewEnrollmentService(f.enrollments, f.students, f.courses, f.publisher, NewValidator(), testLogger)
	return f
}

func TestEnrollmentService_Create(t *testing.T) {
	f := newEnrollmentFixture(t)

	enrollment, err := f.svc.CreateEnrollment(context.Background(), &models.EnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(1), enrollment.ID)
	assert.False(t, enrollment.EnrolledAt.IsZero())
	assert.Equal(t, []string{models.EventEnrollmentCreated}, f.publisher.keys())
}

func TestEnrollmentService_Duplicate(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEnrollment(ctx, &models.EnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)

	_, err = f.svc.EnrollStudent(ctx, 1, &models.EnrollStudentRequest{StudentID: 1})
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Equal(t, "student already enrolled", err.Error())
}

func TestEnrollmentService_ConcurrentDuplicates(t *testing.T) {
	f := newEnrollmentFixture(t)

	const attempts = 8
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		created  int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateEnrollment(context.Background(), &models.EnrollmentRequest{StudentID: 1, CourseID: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, ErrAlreadyEnrolled):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, attempts-1, rejected)
}

func TestEnrollmentService_MissingParents(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEnrollment(ctx, &models.EnrollmentRequest{StudentID: 99, CourseID: 1})
	assert.ErrorIs(t, err, ErrStudentNotFound)

	_, err = f.svc.EnrollStudent(ctx, 42, &models.EnrollStudentRequest{StudentID: 1})
	assert.ErrorIs(t, err, ErrCourseNotFound)

	assert.Empty(t, f.publisher.keys())
}

func TestEnrollmentService_PublishFailureDoesNotFail(t *testing.T) {
	f := newEnrollmentFixture(t)
	f.publisher.err = errors.New("broker down")

	_, err := f.svc.CreateEnrollment(context.Background(), &models.EnrollmentRequest{StudentID: 1, CourseID: 1})
	assert.NoError(t, err)
}

func TestEnrollmentService_Delete(t *testing.T) {
	f := newEnrollmentFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEnrollment(ctx, &models.EnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteEnrollment(ctx, 1))
	assert.ErrorIs(t, f.svc.DeleteEnrollment(ctx, 1), ErrEnrollmentNotFound)
}
