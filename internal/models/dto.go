package models

import (
	"io"
	"time"
)

// Data Transfer Objects

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,max=128"`
}

type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type StudentRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Age   int    `json:"age" validate:"gte=0,lte=150"`
	Email string `json:"email" validate:"required,email,max=255"`
}

type PhotoUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type TeacherRequest struct {
	UserID *int64 `json:"user_id" validate:"omitempty,gt=0"`
	Name   string `json:"name" validate:"required,max=100"`
	Bio    string `json:"bio" validate:"max=5000"`
	Email  string `json:"email" validate:"omitempty,email,max=255"`
}

type CourseRequest struct {
	Title       string `json:"title" validate:"required,max=150"`
	Code        string `json:"code" validate:"required,max=20"`
	Description string `json:"description" validate:"max=5000"`
	TeacherID   *int64 `json:"teacher_id" validate:"omitempty,gt=0"`
	Duration    int    `json:"duration" validate:"gte=0"`
}

type EnrollmentRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
	CourseID  int64 `json:"course_id" validate:"required,gt=0"`
}

// EnrollStudentRequest enrolls a student into the course named in the URL.
type EnrollStudentRequest struct {
	StudentID int64 `json:"student_id" validate:"required,gt=0"`
}

type GradeRequest struct {
	EnrollmentID int64    `json:"enrollment_id" validate:"required,gt=0"`
	Score        *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Comment      string   `json:"comment" validate:"max=5000"`
}

// SetGradeRequest creates or replaces the grade of the enrollment named in the URL.
type SetGradeRequest struct {
	Score   *float64 `json:"score" validate:"omitempty,gte=0,lte=100"`
	Comment string   `json:"comment" validate:"max=5000"`
}

type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Visible *bool  `json:"visible"`
}

type ScheduleRequest struct {
	CourseID  int64  `json:"course_id" validate:"required,gt=0"`
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=mon tue wed thu fri sat sun"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Classroom string `json:"classroom" validate:"max=50"`
	IsActive  *bool  `json:"is_active"`
}

type AssignmentRequest struct {
	CourseID    int64     `json:"course_id" validate:"required,gt=0"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	MaxScore    *int      `json:"max_score" validate:"omitempty,gt=0"`
}

type DocumentUploadRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=5000"`
	FileType    string    `json:"file_type" validate:"omitempty,oneof=lecture assignment material other"`
	CourseID    *int64    `json:"course_id" validate:"omitempty,gt=0"`
	FileName    string    `json:"file_name" validate:"required,max=255"`
	ContentType string    `json:"-"`
	Size        int64     `json:"-"`
	Content     io.Reader `json:"-" validate:"-"`
	UploadedBy  *int64    `json:"-"`
}

// DocumentUpdateRequest replaces a document's metadata. The stored file and
// upload time are kept.
type DocumentUpdateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	FileType    string `json:"file_type" validate:"omitempty,oneof=lecture assignment material other"`
	CourseID    *int64 `json:"course_id" validate:"omitempty,gt=0"`
}

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DocumentFile is an open download stream for a stored document.
type DocumentFile struct {
	Document *Document
	Content  io.ReadCloser
	Size     int64
}
