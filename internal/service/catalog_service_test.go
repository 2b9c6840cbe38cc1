package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

type fakeScheduleRepo struct {
	repository.ScheduleRepository
	created *models.Schedule
	err     error
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *models.Schedule) error {
	if r.err != nil {
		return r.err
	}
	s.ID = 1
	r.created = s
	return nil
}

func (r *fakeScheduleRepo) Delete(context.Context, int64) error {
	return repository.ErrNotFound
}

type fakeAssignmentRepo struct {
	repository.AssignmentRepository
	items map[int64]*models.Assignment
	err   error
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.Assignment) error {
	if r.err != nil {
		return r.err
	}
	a.ID = int64(len(r.items) + 1)
	cp := *a
	r.items[a.ID] = &cp
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id int64) (*models.Assignment, error) {
	a, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

type fakeAnnouncementRepo struct {
	repository.AnnouncementRepository
	created       *models.Announcement
	includeHidden bool
}

func (r *fakeAnnouncementRepo) Create(_ context.Context, a *models.Announcement) error {
	a.ID = 1
	r.created = a
	return nil
}

func (r *fakeAnnouncementRepo) GetAll(_ context.Context, includeHidden bool, _, _ int) ([]models.Announcement, int, error) {
	r.includeHidden = includeHidden
	return []models.Announcement{}, 0, nil
}

type fakeTeacherRepo struct {
	repository.TeacherRepository
	err error
}

func (r *fakeTeacherRepo) Create(_ context.Context, t *models.Teacher) error {
	if r.err != nil {
		return r.err
	}
	t.ID = 1
	return nil
}

func validSchedule() *models.ScheduleRequest {
	return &models.ScheduleRequest{
		CourseID:  3,
		DayOfWeek: "wed",
		StartTime: "09:00",
		EndTime:   "10:30",
		Classroom: " B-12 ",
	}
}

func TestScheduleService_Create(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewScheduleService(repo, NewValidator(), testLogger)

	schedule, err := svc.CreateSchedule(context.Background(), validSchedule())
	require.NoError(t, err)

	assert.True(t, schedule.IsActive)
	assert.Equal(t, "Wednesday", schedule.DayName)
	assert.Equal(t, "B-12", repo.created.Classroom)
}

func TestScheduleService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.ScheduleRequest)
		repoErr error
		check   func(t *testing.T, err error)
	}{
		{
			name:   "end before start",
			mutate: func(r *models.ScheduleRequest) { r.EndTime = "08:00" },
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "end_time", verr.Fields[0].Field)
			},
		},
		{
			name:   "unknown day",
			mutate: func(r *models.ScheduleRequest) { r.DayOfWeek = "funday" },
			check: func(t *testing.T, err error) {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "day_of_week", verr.Fields[0].Field)
			},
		},
		{
			name:    "missing course",
			mutate:  func(*models.ScheduleRequest) {},
			repoErr: repository.ErrForeignKey,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrCourseNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewScheduleService(&fakeScheduleRepo{err: tt.repoErr}, NewValidator(), testLogger)
			req := validSchedule()
			tt.mutate(req)

			_, err := svc.CreateSchedule(context.Background(), req)
			tt.check(t, err)
		})
	}
}

func TestScheduleService_DeleteMissing(t *testing.T) {
	svc := NewScheduleService(&fakeScheduleRepo{}, NewValidator(), testLogger)
	assert.ErrorIs(t, svc.DeleteSchedule(context.Background(), 9), ErrScheduleNotFound)
}

func TestAssignmentService_DefaultsAndOverdue(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &fakeAssignmentRepo{items: map[int64]*models.Assignment{}}
	svc := &assignmentService{
		assignmentRepo: repo,
		validator:      NewValidator(),
		now:            func() time.Time { return now },
		logger:         testLogger,
	}
	ctx := context.Background()

	past, err := svc.CreateAssignment(ctx, &models.AssignmentRequest{
		CourseID:    1,
		Title:       "Essay",
		Description: "Write it",
		DueDate:     now.Add(-time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMaxScore, past.MaxScore)
	assert.True(t, past.Overdue)

	future, err := svc.CreateAssignment(ctx, &models.AssignmentRequest{
		CourseID:    1,
		Title:       "Project",
		Description: "Build it",
		DueDate:     now.Add(48 * time.Hour),
		MaxScore:    ptr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, 50, future.MaxScore)
	assert.False(t, future.Overdue)

	got, err := svc.GetAssignment(ctx, past.ID)
	require.NoError(t, err)
	assert.True(t, got.Overdue)

	_, err = svc.GetAssignment(ctx, 42)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentService_UnknownCourse(t *testing.T) {
	svc := NewAssignmentService(&fakeAssignmentRepo{items: map[int64]*models.Assignment{}, err: repository.ErrForeignKey}, NewValidator(), testLogger)

	_, err := svc.CreateAssignment(context.Background(), &models.AssignmentRequest{
		CourseID:    8,
		Title:       "Quiz",
		Description: "Short",
		DueDate:     time.Now().Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestAnnouncementService_Visibility(t *testing.T) {
	repo := &fakeAnnouncementRepo{}
	svc := NewAnnouncementService(repo, NewValidator(), testLogger)
	ctx := context.Background()

	announcement, err := svc.CreateAnnouncement(ctx, ptr(int64(4)), &models.AnnouncementRequest{Title: " Exams ", Content: "Next week"})
	require.NoError(t, err)
	assert.True(t, announcement.Visible)
	assert.Equal(t, "Exams", announcement.Title)
	require.NotNil(t, repo.created.AuthorID)
	assert.Equal(t, int64(4), *repo.created.AuthorID)

	hidden, err := svc.CreateAnnouncement(ctx, nil, &models.AnnouncementRequest{Title: "Draft", Content: "Later", Visible: ptr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.Visible)

	_, err = svc.ListAnnouncements(ctx, true, 1, 10)
	require.NoError(t, err)
	assert.True(t, repo.includeHidden)
}

func TestTeacherService_WriteErrors(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "user already linked", repoErr: &repository.DuplicateError{Constraint: repository.TeachersUserIDKey}, want: ErrTeacherUserTaken},
		{name: "unknown user", repoErr: repository.ErrForeignKey, want: ErrUserNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTeacherService(&fakeTeacherRepo{err: tt.repoErr}, NewValidator(), testLogger)

			_, err := svc.CreateTeacher(context.Background(), &models.TeacherRequest{Name: "Dr. Lee", UserID: ptr(int64(2))})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
