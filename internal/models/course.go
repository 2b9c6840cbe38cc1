package models

import (
	"time"
)

type Course struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Code        string    `json:"code" db:"code"`
	Description string    `json:"description" db:"description"`
	TeacherID   *int64    `json:"teacher_id" db:"teacher_id"`
	Duration    int       `json:"duration" db:"duration"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type CourseWithDetails struct {
	Course
	TeacherName  *string `json:"teacher_name" db:"teacher_name"`
	StudentCount int     `json:"student_count" db:"student_count"`
}

// CourseDetail is a course together with its roster.
type CourseDetail struct {
	CourseWithDetails
	Enrollments []EnrollmentWithDetails `json:"enrollments"`
}
