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
	"github.com/RubachokBoss/school-service/internal/service/integration"
)

type EnrollmentService interface {
	CreateEnrollment(ctx context.Context, req *models.EnrollmentRequest) (*models.Enrollment, error)
	// EnrollStudent enrolls a student into the given course.
	EnrollStudent(ctx context.Context, courseID int64, req *models.EnrollStudentRequest) (*models.Enrollment, error)
	GetEnrollment(ctx context.Context, id int64) (*models.EnrollmentWithDetails, error)
	ListEnrollments(ctx context.Context, page, limit int) (*models.ListResponse[models.EnrollmentWithDetails], error)
	UpdateEnrollment(ctx context.Context, id int64, req *models.EnrollmentRequest) (*models.Enrollment, error)
	DeleteEnrollment(ctx context.Context, id int64) error
}

type enrollmentService struct {
	enrollmentRepo repository.EnrollmentRepository
	studentRepo    repository.StudentRepository
	courseRepo     repository.CourseRepository
	publisher      integration.EventPublisher
	validator      *Validator
	logger         zerolog.Logger
}

func NewEnrollmentService(
	enrollmentRepo repository.EnrollmentRepository,
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	publisher integration.EventPublisher,
	validator *Validator,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentService{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		publisher:      publisher,
		validator:      validator,
		logger:         logger,
	}
}

func (s *enrollmentService) CreateEnrollment(ctx context.Context, req *models.EnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	return s.enroll(ctx, req.StudentID, req.CourseID)
}

func (s *enrollmentService) EnrollStudent(ctx context.Context, courseID int64, req *models.EnrollStudentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	return s.enroll(ctx, req.StudentID, courseID)
}

func (s *enrollmentService) enroll(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	if err := s.checkParents(ctx, studentID, courseID); err != nil {
		return nil, err
	}

	enrollment := &models.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	}

	// Concurrent duplicates are rejected by the unique constraint.
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, mapEnrollmentWriteError(err, "create")
	}

	s.logger.Info().
		Int64("enrollment_id", enrollment.ID).
		Int64("student_id", studentID).
		Int64("course_id", courseID).
		Msg("Student enrolled")

	publishEvent(ctx, s.publisher, s.logger, models.EventEnrollmentCreated, &models.EnrollmentCreatedEvent{
		EnrollmentID: enrollment.ID,
		StudentID:    studentID,
		CourseID:     courseID,
		Timestamp:    enrollment.EnrolledAt.Unix(),
	})

	return enrollment, nil
}

func (s *enrollmentService) GetEnrollment(ctx context.Context, id int64) (*models.EnrollmentWithDetails, error) {
	enrollment, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	if enrollment == nil {
		return nil, ErrEnrollmentNotFound
	}

	enrollment.Band = models.ScoreBand(enrollment.Score)
	return enrollment, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, page, limit int) (*models.ListResponse[models.EnrollmentWithDetails], error) {
	page, limit, offset := normalizePage(page, limit)

	enrollments, total, err := s.enrollmentRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	for i := range enrollments {
		enrollments[i].Band = models.ScoreBand(enrollments[i].Score)
	}

	return &models.ListResponse[models.EnrollmentWithDetails]{
		Items: enrollments,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *enrollmentService) UpdateEnrollment(ctx context.Context, id int64, req *models.EnrollmentRequest) (*models.Enrollment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.enrollmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get enrollment: %w", err)
	}
	if current == nil {
		return nil, ErrEnrollmentNotFound
	}

	if err := s.checkParents(ctx, req.StudentID, req.CourseID); err != nil {
		return nil, err
	}

	enrollment := current.Enrollment
	enrollment.StudentID = req.StudentID
	enrollment.CourseID = req.CourseID

	if err := s.enrollmentRepo.Update(ctx, &enrollment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, mapEnrollmentWriteError(err, "update")
	}

	s.logger.Info().Int64("enrollment_id", id).Msg("Enrollment updated")
	return &enrollment, nil
}

// DeleteEnrollment removes the enrollment and its grade.
func (s *enrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if err := s.enrollmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.logger.Info().Int64("enrollment_id", id).Msg("Enrollment deleted")
	return nil
}

func (s *enrollmentService) checkParents(ctx context.Context, studentID, courseID int64) error {
	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return fmt.Errorf("failed to check student existence: %w", err)
	}
	if !studentExists {
		return ErrStudentNotFound
	}

	courseExists, err := s.courseRepo.Exists(ctx, courseID)
	if err != nil {
		return fmt.Errorf("failed to check course existence: %w", err)
	}
	if !courseExists {
		return ErrCourseNotFound
	}

	return nil
}

func mapEnrollmentWriteError(err error, op string) error {
	switch {
	case repository.IsDuplicate(err, repository.EnrollmentsStudentCourseKey):
		return ErrAlreadyEnrolled
	case errors.Is(err, repository.ErrForeignKey):
		// A parent vanished between the check and the insert.
		if strings.Contains(err.Error(), "student_id") {
			return ErrStudentNotFound
		}
		return ErrCourseNotFound
	default:
		return fmt.Errorf("failed to %s enrollment: %w", op, err)
	}
}
