package models

import "math"

const (
	MinScore = 0
	MaxScore = 100
)

type Grade struct {
	ID           int64    `json:"id" db:"id"`
	EnrollmentID int64    `json:"enrollment_id" db:"enrollment_id"`
	Score        *float64 `json:"score" db:"score"`
	Comment      string   `json:"comment" db:"comment"`
	Band         Band     `json:"band" db:"-"`
}

type GradeWithDetails struct {
	Grade
	StudentID   int64  `json:"student_id" db:"student_id"`
	StudentName string `json:"student_name" db:"student_name"`
	CourseID    int64  `json:"course_id" db:"course_id"`
	CourseTitle string `json:"course_title" db:"course_title"`
}

// RoundScore rounds to the two decimal places the score column stores.
func RoundScore(score *float64) *float64 {
	if score == nil {
		return nil
	}
	rounded := math.Round(*score*100) / 100
	return &rounded
}
