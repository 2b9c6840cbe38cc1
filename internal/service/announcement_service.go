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

type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, authorID *int64, req *models.AnnouncementRequest) (*models.Announcement, error)
	GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error)
	// ListAnnouncements returns newest first; hidden ones only when includeHidden is set.
	ListAnnouncements(ctx context.Context, includeHidden bool, page, limit int) (*models.ListResponse[models.Announcement], error)
	UpdateAnnouncement(ctx context.Context, id int64, req *models.AnnouncementRequest) (*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

type announcementService struct {
	announcementRepo repository.AnnouncementRepository
	validator        *Validator
	logger           zerolog.Logger
}

func NewAnnouncementService(announcementRepo repository.AnnouncementRepository, validator *Validator, logger zerolog.Logger) AnnouncementService {
	return &announcementService{
		announcementRepo: announcementRepo,
		validator:        validator,
		logger:           logger,
	}
}

func (s *announcementService) CreateAnnouncement(ctx context.Context, authorID *int64, req *models.AnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
		Visible:   req.Visible == nil || *req.Visible,
	}

	if err := s.announcementRepo.Create(ctx, announcement); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}

	s.logger.Info().Int64("announcement_id", announcement.ID).Msg("Announcement created")
	return announcement, nil
}

func (s *announcementService) GetAnnouncement(ctx context.Context, id int64) (*models.Announcement, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	if announcement == nil {
		return nil, ErrAnnouncementNotFound
	}
	return announcement, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context, includeHidden bool, page, limit int) (*models.ListResponse[models.Announcement], error) {
	page, limit, offset := normalizePage(page, limit)

	announcements, total, err := s.announcementRepo.GetAll(ctx, includeHidden, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}

	return &models.ListResponse[models.Announcement]{
		Items: announcements,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, id int64, req *models.AnnouncementRequest) (*models.Announcement, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	announcement, err := s.GetAnnouncement(ctx, id)
	if err != nil {
		return nil, err
	}

	announcement.Title = strings.TrimSpace(req.Title)
	announcement.Content = req.Content
	announcement.Visible = req.Visible == nil || *req.Visible

	if err := s.announcementRepo.Update(ctx, announcement); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}

	s.logger.Info().Int64("announcement_id", id).Msg("Announcement updated")
	return announcement, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	if err := s.announcementRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}

	s.logger.Info().Int64("announcement_id", id).Msg("Announcement deleted")
	return nil
}
