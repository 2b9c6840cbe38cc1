package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
	"github.com/RubachokBoss/school-service/internal/service/integration"
)

const documentPrefix = "documents/"

type DocumentService interface {
	UploadDocument(ctx context.Context, req *models.DocumentUploadRequest) (*models.Document, error)
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	// ListDocuments returns newest uploads first, optionally for one course.
	ListDocuments(ctx context.Context, courseID *int64, page, limit int) (*models.ListResponse[models.Document], error)
	// UpdateDocument replaces title, description, type and course.
	UpdateDocument(ctx context.Context, id int64, req *models.DocumentUpdateRequest) (*models.Document, error)
	OpenDocument(ctx context.Context, id int64) (*models.DocumentFile, error)
	DeleteDocument(ctx context.Context, id int64) error
}

type documentService struct {
	documentRepo repository.DocumentRepository
	storage      integration.FileStorage
	publisher    integration.EventPublisher
	validator    *Validator
	logger       zerolog.Logger
}

func NewDocumentService(
	documentRepo repository.DocumentRepository,
	storage integration.FileStorage,
	publisher integration.EventPublisher,
	validator *Validator,
	logger zerolog.Logger,
) DocumentService {
	return &documentService{
		documentRepo: documentRepo,
		storage:      storage,
		publisher:    publisher,
		validator:    validator,
		logger:       logger,
	}
}

func (s *documentService) UploadDocument(ctx context.Context, req *models.DocumentUploadRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if req.Content == nil {
		return nil, newFieldError("file", "file is required")
	}

	fileType := models.DocumentTypeOther
	if req.FileType != "" {
		fileType = models.DocumentType(req.FileType)
	}

	key := documentPrefix + uuid.New().String()
	if ext := models.FileExtension(req.FileName); ext != "" {
		key += "." + ext
	}

	if err := s.storage.Upload(ctx, key, req.Content, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	document := &models.Document{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileKey:     key,
		FileName:    req.FileName,
		FileSize:    s.resolveSize(ctx, key, req.Size),
		FileType:    fileType,
		CourseID:    req.CourseID,
		UploadedBy:  req.UploadedBy,
		UploadedAt:  time.Now().UTC(),
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("Failed to remove orphaned document object")
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	document.Decorate()

	s.logger.Info().
		Int64("document_id", document.ID).
		Str("key", key).
		Str("size", document.SizeDisplay).
		Msg("Document uploaded")

	publishEvent(ctx, s.publisher, s.logger, models.EventDocumentUploaded, &models.DocumentEvent{
		DocumentID: document.ID,
		FileKey:    document.FileKey,
		FileType:   document.FileType,
		CourseID:   document.CourseID,
		Timestamp:  document.UploadedAt.Unix(),
	})

	return document, nil
}

func (s *documentService) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}

	if document.FileSize == nil {
		document.FileSize = s.resolveSize(ctx, document.FileKey, -1)
	}
	document.Decorate()
	return document, nil
}

func (s *documentService) ListDocuments(ctx context.Context, courseID *int64, page, limit int) (*models.ListResponse[models.Document], error) {
	page, limit, offset := normalizePage(page, limit)

	documents, total, err := s.documentRepo.GetAll(ctx, courseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	for i := range documents {
		documents[i].Decorate()
	}

	return &models.ListResponse[models.Document]{
		Items: documents,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *documentService) UpdateDocument(ctx context.Context, id int64, req *models.DocumentUpdateRequest) (*models.Document, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	fileType := models.DocumentTypeOther
	if req.FileType != "" {
		fileType = models.DocumentType(req.FileType)
	}

	err := s.documentRepo.Update(ctx, &models.Document{
		ID:          id,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		FileType:    fileType,
		CourseID:    req.CourseID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrDocumentNotFound
		case errors.Is(err, repository.ErrForeignKey):
			return nil, ErrCourseNotFound
		default:
			return nil, fmt.Errorf("failed to update document: %w", err)
		}
	}

	s.logger.Info().Int64("document_id", id).Msg("Document updated")

	return s.GetDocument(ctx, id)
}

func (s *documentService) OpenDocument(ctx context.Context, id int64) (*models.DocumentFile, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	if document == nil {
		return nil, ErrDocumentNotFound
	}

	content, size, err := s.storage.Download(ctx, document.FileKey)
	if err != nil {
		if errors.Is(err, integration.ErrObjectNotFound) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to download document: %w", err)
	}

	document.FileSize = &size
	document.Decorate()

	return &models.DocumentFile{
		Document: document,
		Content:  content,
		Size:     size,
	}, nil
}

// DeleteDocument removes the row first; a failure to remove the stored
// object afterwards is only logged.
func (s *documentService) DeleteDocument(ctx context.Context, id int64) error {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}
	if document == nil {
		return ErrDocumentNotFound
	}

	if err := s.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	if err := s.storage.Delete(ctx, document.FileKey); err != nil {
		s.logger.Error().Err(err).Str("key", document.FileKey).Msg("Failed to delete document object")
	}

	s.logger.Info().Int64("document_id", id).Msg("Document deleted")

	publishEvent(ctx, s.publisher, s.logger, models.EventDocumentDeleted, &models.DocumentEvent{
		DocumentID: document.ID,
		FileKey:    document.FileKey,
		FileType:   document.FileType,
		CourseID:   document.CourseID,
		Timestamp:  time.Now().Unix(),
	})

	return nil
}

// resolveSize returns known when it is non-negative, otherwise asks the
// storage. Nil means the size is unavailable.
func (s *documentService) resolveSize(ctx context.Context, key string, known int64) *int64 {
	if known >= 0 {
		return &known
	}

	size, err := s.storage.Stat(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Document size unavailable")
		return nil
	}
	return &size
}
