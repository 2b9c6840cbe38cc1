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

const studentPhotoPrefix = "student_photos/"

var photoExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

type StudentService interface {
	CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.StudentWithStats, error)
	ListStudents(ctx context.Context, page, limit int) (*models.ListResponse[models.StudentWithStats], error)
	GetStudentEnrollments(ctx context.Context, id int64) ([]models.StudentEnrollment, error)
	UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) (*models.Student, error)
	UploadPhoto(ctx context.Context, id int64, upload *models.PhotoUpload) (*models.StudentWithStats, error)
	DeleteStudent(ctx context.Context, id int64) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	storage     integration.FileStorage
	validator   *Validator
	logger      zerolog.Logger
}

func NewStudentService(
	studentRepo repository.StudentRepository,
	storage integration.FileStorage,
	validator *Validator,
	logger zerolog.Logger,
) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		storage:     storage,
		validator:   validator,
		logger:      logger,
	}
}

func (s *studentService) CreateStudent(ctx context.Context, req *models.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:      strings.TrimSpace(req.Name),
		Age:       req.Age,
		Email:     req.Email,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("email", student.Email).
		Msg("Student created")

	return student, nil
}

func (s *studentService) GetStudent(ctx context.Context, id int64) (*models.StudentWithStats, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	student.Band = models.ScoreBand(student.AvgGrade)
	return student, nil
}

func (s *studentService) ListStudents(ctx context.Context, page, limit int) (*models.ListResponse[models.StudentWithStats], error) {
	page, limit, offset := normalizePage(page, limit)

	students, total, err := s.studentRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	for i := range students {
		students[i].Band = models.ScoreBand(students[i].AvgGrade)
	}

	return &models.ListResponse[models.StudentWithStats]{
		Items: students,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *studentService) GetStudentEnrollments(ctx context.Context, id int64) ([]models.StudentEnrollment, error) {
	exists, err := s.studentRepo.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check student existence: %w", err)
	}
	if !exists {
		return nil, ErrStudentNotFound
	}

	enrollments, err := s.studentRepo.GetEnrollments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student enrollments: %w", err)
	}

	for i := range enrollments {
		enrollments[i].Band = models.ScoreBand(enrollments[i].Score)
	}

	return enrollments, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, id int64, req *models.StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if current == nil {
		return nil, ErrStudentNotFound
	}

	student := current.Student
	student.Name = strings.TrimSpace(req.Name)
	student.Age = req.Age
	student.Email = req.Email

	if err := s.studentRepo.Update(ctx, &student); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to update student: %w", err)
	}

	s.logger.Info().Int64("student_id", id).Msg("Student updated")
	return &student, nil
}

func (s *studentService) UploadPhoto(ctx context.Context, id int64, upload *models.PhotoUpload) (*models.StudentWithStats, error) {
	ext := models.FileExtension(upload.FileName)
	if !photoExtensions[ext] {
		return nil, newFieldError("photo", "photo must be a jpg, jpeg, png, gif or webp image")
	}

	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if current == nil {
		return nil, ErrStudentNotFound
	}

	key := studentPhotoPrefix + uuid.New().String() + "." + ext
	if err := s.storage.Upload(ctx, key, upload.Content, upload.Size, upload.ContentType); err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	if err := s.studentRepo.UpdatePhoto(ctx, id, key); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Error().Err(delErr).Str("key", key).Msg("Failed to remove orphaned photo")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to save photo: %w", err)
	}

	if current.Photo != nil && *current.Photo != "" {
		if err := s.storage.Delete(ctx, *current.Photo); err != nil {
			s.logger.Warn().Err(err).Str("key", *current.Photo).Msg("Failed to remove previous photo")
		}
	}

	s.logger.Info().
		Int64("student_id", id).
		Str("key", key).
		Msg("Student photo uploaded")

	current.Photo = &key
	current.Band = models.ScoreBand(current.AvgGrade)
	return current, nil
}

// DeleteStudent removes the student together with their enrollments and
// grades, then the stored photo. Failing to remove the photo is only logged.
func (s *studentService) DeleteStudent(ctx context.Context, id int64) error {
	current, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get student: %w", err)
	}
	if current == nil {
		return ErrStudentNotFound
	}

	if err := s.studentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if current.Photo != nil && *current.Photo != "" {
		if err := s.storage.Delete(ctx, *current.Photo); err != nil {
			s.logger.Warn().Err(err).Str("key", *current.Photo).Msg("Failed to remove student photo")
		}
	}

	s.logger.Info().Int64("student_id", id).Msg("Student deleted")
	return nil
}
