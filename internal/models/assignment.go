package models

import (
	"time"
)

const DefaultMaxScore = 100

type Assignment struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"course_id" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	MaxScore    int       `json:"max_score" db:"max_score"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Overdue     bool      `json:"overdue" db:"-"`
}

func (a *Assignment) IsOverdue(now time.Time) bool {
	return now.After(a.DueDate)
}
