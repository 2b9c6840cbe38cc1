package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
	"github.com/RubachokBoss/school-service/internal/service/integration"
)

type GradeService interface {
	CreateGrade(ctx context.Context, req *models.GradeRequest) (*models.Grade, error)
	// SetEnrollmentGrade creates the enrollment's grade or replaces the existing one.
	SetEnrollmentGrade(ctx context.Context, enrollmentID int64, req *models.SetGradeRequest) (*models.Grade, error)
	GetGrade(ctx context.Context, id int64) (*models.GradeWithDetails, error)
	ListGrades(ctx context.Context, page, limit int) (*models.ListResponse[models.GradeWithDetails], error)
	UpdateGrade(ctx context.Context, id int64, req *models.GradeRequest) (*models.Grade, error)
	DeleteGrade(ctx context.Context, id int64) error
}

type gradeService struct {
	gradeRepo      repository.GradeRepository
	enrollmentRepo repository.EnrollmentRepository
	publisher      integration.EventPublisher
	validator      *Validator
	logger         zerolog.Logger
}

func NewGradeService(
	gradeRepo repository.GradeRepository,
	enrollmentRepo repository.EnrollmentRepository,
	publisher integration.EventPublisher,
	validator *Validator,
	logger zerolog.Logger,
) GradeService {
	return &gradeService{
		gradeRepo:      gradeRepo,
		enrollmentRepo: enrollmentRepo,
		publisher:      publisher,
		validator:      validator,
		logger:         logger,
	}
}

func (s *gradeService) CreateGrade(ctx context.Context, req *models.GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if err := s.ensureEnrollment(ctx, req.EnrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID: req.EnrollmentID,
		Score:        models.RoundScore(req.Score),
		Comment:      req.Comment,
	}

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, mapGradeWriteError(err, "create")
	}

	s.recorded(ctx, grade)
	return grade, nil
}

func (s *gradeService) SetEnrollmentGrade(ctx context.Context, enrollmentID int64, req *models.SetGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if err := s.ensureEnrollment(ctx, enrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID: enrollmentID,
		Score:        models.RoundScore(req.Score),
		Comment:      req.Comment,
	}

	if err := s.gradeRepo.Upsert(ctx, grade); err != nil {
		return nil, mapGradeWriteError(err, "save")
	}

	s.recorded(ctx, grade)
	return grade, nil
}

func (s *gradeService) GetGrade(ctx context.Context, id int64) (*models.GradeWithDetails, error) {
	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get grade: %w", err)
	}
	if grade == nil {
		return nil, ErrGradeNotFound
	}

	grade.Band = models.ScoreBand(grade.Score)
	return grade, nil
}

func (s *gradeService) ListGrades(ctx context.Context, page, limit int) (*models.ListResponse[models.GradeWithDetails], error) {
	page, limit, offset := normalizePage(page, limit)

	grades, total, err := s.gradeRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list grades: %w", err)
	}

	for i := range grades {
		grades[i].Band = models.ScoreBand(grades[i].Score)
	}

	return &models.ListResponse[models.GradeWithDetails]{
		Items: grades,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *gradeService) UpdateGrade(ctx context.Context, id int64, req *models.GradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if err := s.ensureEnrollment(ctx, req.EnrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		ID:           id,
		EnrollmentID: req.EnrollmentID,
		Score:        models.RoundScore(req.Score),
		Comment:      req.Comment,
	}

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGradeNotFound
		}
		return nil, mapGradeWriteError(err, "update")
	}

	s.recorded(ctx, grade)
	return grade, nil
}

func (s *gradeService) DeleteGrade(ctx context.Context, id int64) error {
	if err := s.gradeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGradeNotFound
		}
		return fmt.Errorf("failed to delete grade: %w", err)
	}

	s.logger.Info().Int64("grade_id", id).Msg("Grade deleted")
	return nil
}

func (s *gradeService) ensureEnrollment(ctx context.Context, id int64) error {
	exists, err := s.enrollmentRepo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check enrollment existence: %w", err)
	}
	if !exists {
		return ErrEnrollmentNotFound
	}
	return nil
}

// recorded attaches the band, logs and publishes the grade.recorded event.
func (s *gradeService) recorded(ctx context.Context, grade *models.Grade) {
	grade.Band = models.ScoreBand(grade.Score)

	event := s.logger.Info().
		Int64("grade_id", grade.ID).
		Int64("enrollment_id", grade.EnrollmentID).
		Str("band", grade.Band.String())
	if grade.Score != nil {
		event = event.Float64("score", *grade.Score)
	}
	event.Msg("Grade recorded")

	publishEvent(ctx, s.publisher, s.logger, models.EventGradeRecorded, &models.GradeRecordedEvent{
		GradeID:      grade.ID,
		EnrollmentID: grade.EnrollmentID,
		Score:        grade.Score,
		Band:         grade.Band,
		Timestamp:    time.Now().Unix(),
	})
}

func mapGradeWriteError(err error, op string) error {
	switch {
	case repository.IsDuplicate(err, repository.GradesEnrollmentIDKey):
		return ErrGradeExists
	case errors.Is(err, repository.ErrForeignKey):
		return ErrEnrollmentNotFound
	case errors.Is(err, repository.ErrCheckViolation):
		return newFieldError("score", "score must be between 0 and 100")
	default:
		return fmt.Errorf("failed to %s grade: %w", op, err)
	}
}
