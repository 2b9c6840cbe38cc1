package models

import "time"

type Announcement struct {
	ID         int64     `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Content    string    `json:"content" db:"content"`
	AuthorID   *int64    `json:"author_id" db:"author_id"`
	AuthorName *string   `json:"author_name" db:"author_name"`
	CreatedAt  time.Time `json:"created" db:"created_at"`
	Visible    bool      `json:"visible" db:"visible"`
}
