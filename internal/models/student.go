package models

import (
	"time"
)

type Student struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Age       int       `json:"age" db:"age"`
	Email     string    `json:"email" db:"email"`
	Photo     *string   `json:"photo,omitempty" db:"photo"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type StudentWithStats struct {
	Student
	TotalEnrollments int      `json:"total_enrollments" db:"total_enrollments"`
	AvgGrade         *float64 `json:"avg_grade" db:"avg_grade"`
	Band             Band     `json:"band" db:"-"`
}

// StudentEnrollment is one row of a student's course list.
type StudentEnrollment struct {
	EnrollmentID int64     `json:"enrollment_id" db:"enrollment_id"`
	CourseID     int64     `json:"course_id" db:"course_id"`
	CourseTitle  string    `json:"course_title" db:"course_title"`
	CourseCode   string    `json:"course_code" db:"course_code"`
	EnrolledAt   time.Time `json:"enrolled_at" db:"enrolled_at"`
	Score        *float64  `json:"score" db:"score"`
	Comment      string    `json:"comment" db:"comment"`
	Band         Band      `json:"band" db:"-"`
}
