package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

type ScheduleService interface {
	CreateSchedule(ctx context.Context, req *models.ScheduleRequest) (*models.Schedule, error)
	GetSchedule(ctx context.Context, id int64) (*models.Schedule, error)
	ListSchedules(ctx context.Context, activeOnly bool, page, limit int) (*models.ListResponse[models.Schedule], error)
	UpdateSchedule(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	validator    *Validator
	logger       zerolog.Logger
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, validator *Validator, logger zerolog.Logger) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		validator:    validator,
		logger:       logger,
	}
}

func (s *scheduleService) CreateSchedule(ctx context.Context, req *models.ScheduleRequest) (*models.Schedule, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	schedule := scheduleFromRequest(req)
	if err := s.scheduleRepo.Create(ctx, schedule); err != nil {
		return nil, mapScheduleWriteError(err, "create")
	}

	schedule.DayName = schedule.DayOfWeek.DisplayName()

	s.logger.Info().
		Int64("schedule_id", schedule.ID).
		Int64("course_id", schedule.CourseID).
		Str("day", schedule.DayOfWeek.String()).
		Msg("Schedule created")

	return schedule, nil
}

func (s *scheduleService) GetSchedule(ctx context.Context, id int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return nil, ErrScheduleNotFound
	}

	schedule.DayName = schedule.DayOfWeek.DisplayName()
	return schedule, nil
}

// ListSchedules returns entries in calendar order, Monday first.
func (s *scheduleService) ListSchedules(ctx context.Context, activeOnly bool, page, limit int) (*models.ListResponse[models.Schedule], error) {
	page, limit, offset := normalizePage(page, limit)

	schedules, total, err := s.scheduleRepo.GetAll(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	for i := range schedules {
		schedules[i].DayName = schedules[i].DayOfWeek.DisplayName()
	}

	return &models.ListResponse[models.Schedule]{
		Items: schedules,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *scheduleService) UpdateSchedule(ctx context.Context, id int64, req *models.ScheduleRequest) (*models.Schedule, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	schedule := scheduleFromRequest(req)
	schedule.ID = id

	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, mapScheduleWriteError(err, "update")
	}

	schedule.DayName = schedule.DayOfWeek.DisplayName()

	s.logger.Info().Int64("schedule_id", id).Msg("Schedule updated")
	return schedule, nil
}

func (s *scheduleService) DeleteSchedule(ctx context.Context, id int64) error {
	if err := s.scheduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("failed to delete schedule: %w", err)
	}

	s.logger.Info().Int64("schedule_id", id).Msg("Schedule deleted")
	return nil
}

func (s *scheduleService) validate(req *models.ScheduleRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	// Zero-padded HH:MM compares correctly as a string.
	if req.EndTime <= req.StartTime {
		return newFieldError("end_time", "end_time must be after start_time")
	}
	return nil
}

func scheduleFromRequest(req *models.ScheduleRequest) *models.Schedule {
	return &models.Schedule{
		CourseID:  req.CourseID,
		DayOfWeek: models.Weekday(req.DayOfWeek),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Classroom: strings.TrimSpace(req.Classroom),
		IsActive:  req.IsActive == nil || *req.IsActive,
	}
}

func mapScheduleWriteError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrForeignKey):
		return ErrCourseNotFound
	case errors.Is(err, repository.ErrCheckViolation):
		return newFieldError("end_time", "end_time must be after start_time")
	default:
		return fmt.Errorf("failed to %s schedule: %w", op, err)
	}
}
