package models

import "time"

type Teacher struct {
	ID        int64     `json:"id" db:"id"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio" db:"bio"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type TeacherWithStats struct {
	Teacher
	TotalCourses int `json:"total_courses" db:"total_courses"`
}
