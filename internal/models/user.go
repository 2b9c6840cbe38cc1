package models

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsSystem     bool      `json:"is_system" db:"is_system"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
