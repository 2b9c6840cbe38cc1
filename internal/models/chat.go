package models

import "time"

const (
	DefaultChatRoom    = "general"
	ChatHistoryLimit   = 50
	MaxChatRoomNameLen = 100
)

type ChatMessage struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Message   string    `json:"message" db:"message"`
	Room      string    `json:"room" db:"room"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
