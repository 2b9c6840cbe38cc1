package models

import (
	"time"
)

type Enrollment struct {
	ID         int64     `json:"id" db:"id"`
	StudentID  int64     `json:"student_id" db:"student_id"`
	CourseID   int64     `json:"course_id" db:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`
}

type EnrollmentWithDetails struct {
	Enrollment
	StudentName string   `json:"student_name" db:"student_name"`
	CourseTitle string   `json:"course_title" db:"course_title"`
	GradeID     *int64   `json:"grade_id" db:"grade_id"`
	Score       *float64 `json:"score" db:"score"`
	Comment     string   `json:"comment" db:"comment"`
	Band        Band     `json:"band" db:"-"`
}
