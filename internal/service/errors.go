package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrTeacherNotFound      = errors.New("teacher not found")
	ErrCourseNotFound       = errors.New("course not found")
	ErrEnrollmentNotFound   = errors.New("enrollment not found")
	ErrGradeNotFound        = errors.New("grade not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrScheduleNotFound     = errors.New("schedule not found")
	ErrAssignmentNotFound   = errors.New("assignment not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrFileNotFound         = errors.New("file not found")

	ErrAlreadyEnrolled  = errors.New("student already enrolled")
	ErrGradeExists      = errors.New("enrollment already has a grade")
	ErrCourseCodeTaken  = errors.New("course code already in use")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrTeacherUserTaken = errors.New("user is already linked to a teacher")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}

	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Err, strings.Join(msgs, "; "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

var errValidation = errors.New("validation failed")

func newFieldError(field, message string) *ValidationError {
	return &ValidationError{
		Err:    errValidation,
		Fields: []FieldError{{Field: field, Message: message}},
	}
}
