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

type AssignmentService interface {
	CreateAssignment(ctx context.Context, req *models.AssignmentRequest) (*models.Assignment, error)
	GetAssignment(ctx context.Context, id int64) (*models.Assignment, error)
	ListAssignments(ctx context.Context, page, limit int) (*models.ListResponse[models.Assignment], error)
	UpdateAssignment(ctx context.Context, id int64, req *models.AssignmentRequest) (*models.Assignment, error)
	DeleteAssignment(ctx context.Context, id int64) error
}

type assignmentService struct {
	assignmentRepo repository.AssignmentRepository
	validator      *Validator
	now            func() time.Time
	logger         zerolog.Logger
}

func NewAssignmentService(assignmentRepo repository.AssignmentRepository, validator *Validator, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		validator:      validator,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, req *models.AssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	assignment := assignmentFromRequest(req)
	assignment.CreatedAt = s.now().UTC()

	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, mapAssignmentWriteError(err, "create")
	}

	assignment.Overdue = assignment.IsOverdue(s.now())

	s.logger.Info().
		Int64("assignment_id", assignment.ID).
		Int64("course_id", assignment.CourseID).
		Time("due_date", assignment.DueDate).
		Msg("Assignment created")

	return assignment, nil
}

func (s *assignmentService) GetAssignment(ctx context.Context, id int64) (*models.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}

	assignment.Overdue = assignment.IsOverdue(s.now())
	return assignment, nil
}

func (s *assignmentService) ListAssignments(ctx context.Context, page, limit int) (*models.ListResponse[models.Assignment], error) {
	page, limit, offset := normalizePage(page, limit)

	assignments, total, err := s.assignmentRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	now := s.now()
	for i := range assignments {
		assignments[i].Overdue = assignments[i].IsOverdue(now)
	}

	return &models.ListResponse[models.Assignment]{
		Items: assignments,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *assignmentService) UpdateAssignment(ctx context.Context, id int64, req *models.AssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}
	if current == nil {
		return nil, ErrAssignmentNotFound
	}

	assignment := assignmentFromRequest(req)
	assignment.ID = id
	assignment.CreatedAt = current.CreatedAt

	if err := s.assignmentRepo.Update(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, mapAssignmentWriteError(err, "update")
	}

	assignment.Overdue = assignment.IsOverdue(s.now())

	s.logger.Info().Int64("assignment_id", id).Msg("Assignment updated")
	return assignment, nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, id int64) error {
	if err := s.assignmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	s.logger.Info().Int64("assignment_id", id).Msg("Assignment deleted")
	return nil
}

func assignmentFromRequest(req *models.AssignmentRequest) *models.Assignment {
	maxScore := models.DefaultMaxScore
	if req.MaxScore != nil {
		maxScore = *req.MaxScore
	}

	return &models.Assignment{
		CourseID:    req.CourseID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		DueDate:     req.DueDate.UTC(),
		MaxScore:    maxScore,
	}
}

func mapAssignmentWriteError(err error, op string) error {
	if errors.Is(err, repository.ErrForeignKey) {
		return ErrCourseNotFound
	}
	return fmt.Errorf("failed to %s assignment: %w", op, err)
}
