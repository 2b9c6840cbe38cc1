package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

type CourseService interface {
	CreateCourse(ctx context.Context, req *models.CourseRequest) (*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.CourseWithDetails, error)
	// GetCourseDetail returns the course with its roster, grades and bands.
	GetCourseDetail(ctx context.Context, id int64) (*models.CourseDetail, error)
	ListCourses(ctx context.Context, page, limit int) (*models.ListResponse[models.CourseWithDetails], error)
	UpdateCourse(ctx context.Context, id int64, req *models.CourseRequest) (*models.Course, error)
	DeleteCourse(ctx context.Context, id int64) error
	GetCourseSchedules(ctx context.Context, id int64) ([]models.Schedule, error)
	GetCourseAssignments(ctx context.Context, id int64) ([]models.Assignment, error)
}

type courseService struct {
	courseRepo     repository.CourseRepository
	enrollmentRepo repository.EnrollmentRepository
	scheduleRepo   repository.ScheduleRepository
	assignmentRepo repository.AssignmentRepository
	validator      *Validator
	now            func() time.Time
	logger         zerolog.Logger
}

func NewCourseService(
	courseRepo repository.CourseRepository,
	enrollmentRepo repository.EnrollmentRepository,
	scheduleRepo repository.ScheduleRepository,
	assignmentRepo repository.AssignmentRepository,
	validator *Validator,
	logger zerolog.Logger,
) CourseService {
	return &courseService{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		scheduleRepo:   scheduleRepo,
		assignmentRepo: assignmentRepo,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *courseService) CreateCourse(ctx context.Context, req *models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	course := &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Code:        strings.TrimSpace(req.Code),
		Description: req.Description,
		TeacherID:   req.TeacherID,
		Duration:    req.Duration,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, mapCourseWriteError(err, "create")
	}

	s.logger.Info().
		Int64("course_id", course.ID).
		Str("code", course.Code).
		Msg("Course created")

	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.CourseWithDetails, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *courseService) GetCourseDetail(ctx context.Context, id int64) (*models.CourseDetail, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course enrollments: %w", err)
	}

	for i := range enrollments {
		enrollments[i].Band = models.ScoreBand(enrollments[i].Score)
	}

	return &models.CourseDetail{
		CourseWithDetails: *course,
		Enrollments:       enrollments,
	}, nil
}

func (s *courseService) ListCourses(ctx context.Context, page, limit int) (*models.ListResponse[models.CourseWithDetails], error) {
	page, limit, offset := normalizePage(page, limit)

	courses, total, err := s.courseRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return &models.ListResponse[models.CourseWithDetails]{
		Items: courses,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *courseService) UpdateCourse(ctx context.Context, id int64, req *models.CourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if current == nil {
		return nil, ErrCourseNotFound
	}

	course := current.Course
	course.Title = strings.TrimSpace(req.Title)
	course.Code = strings.TrimSpace(req.Code)
	course.Description = req.Description
	course.TeacherID = req.TeacherID
	course.Duration = req.Duration

	if err := s.courseRepo.Update(ctx, &course); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, mapCourseWriteError(err, "update")
	}

	s.logger.Info().Int64("course_id", id).Msg("Course updated")
	return &course, nil
}

// DeleteCourse removes the course with its enrollments, grades, schedules
// and assignments. Documents of the course are kept and detached.
func (s *courseService) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.logger.Info().Int64("course_id", id).Msg("Course deleted")
	return nil
}

func (s *courseService) GetCourseSchedules(ctx context.Context, id int64) ([]models.Schedule, error) {
	if err := s.ensureCourse(ctx, id); err != nil {
		return nil, err
	}

	schedules, err := s.scheduleRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course schedules: %w", err)
	}

	for i := range schedules {
		schedules[i].DayName = schedules[i].DayOfWeek.DisplayName()
	}
	return schedules, nil
}

func (s *courseService) GetCourseAssignments(ctx context.Context, id int64) ([]models.Assignment, error) {
	if err := s.ensureCourse(ctx, id); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.GetByCourseID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get course assignments: %w", err)
	}

	now := s.now()
	for i := range assignments {
		assignments[i].Overdue = assignments[i].IsOverdue(now)
	}
	return assignments, nil
}

func (s *courseService) ensureCourse(ctx context.Context, id int64) error {
	exists, err := s.courseRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check course existence: %w", err)
	}
	if !exists {
		return ErrCourseNotFound
	}
	return nil
}

func mapCourseWriteError(err error, op string) error {
	switch {
	case repository.IsDuplicate(err, repository.CoursesCodeKey):
		return ErrCourseCodeTaken
	case errors.Is(err, repository.ErrForeignKey):
		return ErrTeacherNotFound
	default:
		return fmt.Errorf("failed to %s course: %w", op, err)
	}
}
