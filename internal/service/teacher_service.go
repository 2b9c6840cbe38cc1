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

type TeacherService interface {
	CreateTeacher(ctx context.Context, req *models.TeacherRequest) (*models.Teacher, error)
	GetTeacher(ctx context.Context, id int64) (*models.TeacherWithStats, error)
	ListTeachers(ctx context.Context, page, limit int) (*models.ListResponse[models.TeacherWithStats], error)
	UpdateTeacher(ctx context.Context, id int64, req *models.TeacherRequest) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, id int64) error
}

type teacherService struct {
	teacherRepo repository.TeacherRepository
	validator   *Validator
	logger      zerolog.Logger
}

func NewTeacherService(teacherRepo repository.TeacherRepository, validator *Validator, logger zerolog.Logger) TeacherService {
	return &teacherService{
		teacherRepo: teacherRepo,
		validator:   validator,
		logger:      logger,
	}
}

func (s *teacherService) CreateTeacher(ctx context.Context, req *models.TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{
		UserID:    req.UserID,
		Name:      strings.TrimSpace(req.Name),
		Bio:       req.Bio,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.teacherRepo.Create(ctx, teacher); err != nil {
		return nil, mapTeacherWriteError(err, "create")
	}

	s.logger.Info().Int64("teacher_id", teacher.ID).Msg("Teacher created")
	return teacher, nil
}

func (s *teacherService) GetTeacher(ctx context.Context, id int64) (*models.TeacherWithStats, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if teacher == nil {
		return nil, ErrTeacherNotFound
	}
	return teacher, nil
}

func (s *teacherService) ListTeachers(ctx context.Context, page, limit int) (*models.ListResponse[models.TeacherWithStats], error) {
	page, limit, offset := normalizePage(page, limit)

	teachers, total, err := s.teacherRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}

	return &models.ListResponse[models.TeacherWithStats]{
		Items: teachers,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *teacherService) UpdateTeacher(ctx context.Context, id int64, req *models.TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get teacher: %w", err)
	}
	if current == nil {
		return nil, ErrTeacherNotFound
	}

	teacher := current.Teacher
	teacher.UserID = req.UserID
	teacher.Name = strings.TrimSpace(req.Name)
	teacher.Bio = req.Bio
	teacher.Email = req.Email

	if err := s.teacherRepo.Update(ctx, &teacher); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, mapTeacherWriteError(err, "update")
	}

	s.logger.Info().Int64("teacher_id", id).Msg("Teacher updated")
	return &teacher, nil
}

// DeleteTeacher removes the teacher; their courses stay without a teacher.
func (s *teacherService) DeleteTeacher(ctx context.Context, id int64) error {
	if err := s.teacherRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTeacherNotFound
		}
		return fmt.Errorf("failed to delete teacher: %w", err)
	}

	s.logger.Info().Int64("teacher_id", id).Msg("Teacher deleted")
	return nil
}

func mapTeacherWriteError(err error, op string) error {
	switch {
	case repository.IsDuplicate(err, repository.TeachersUserIDKey):
		return ErrTeacherUserTaken
	case errors.Is(err, repository.ErrForeignKey):
		return ErrUserNotFound
	default:
		return fmt.Errorf("failed to %s teacher: %w", op, err)
	}
}
