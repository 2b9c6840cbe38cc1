package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type ChatRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	// GetRecent returns the newest limit messages of a room, oldest first.
	GetRecent(ctx context.Context, room string, limit int) ([]models.ChatMessage, error)
}

type chatRepository struct {
	*PostgresRepository
}

func NewChatRepository(db *sql.DB, logger zerolog.Logger) ChatRepository {
	return &chatRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *chatRepository) Create(ctx context.Context, m *models.ChatMessage) error {
	query := `
		INSERT INTO chat_messages (user_id, message, room, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		m.UserID,
		m.Message,
		m.Room,
		m.Timestamp,
	).Scan(&m.ID)

	return translateError(err)
}

func (r *chatRepository) GetRecent(ctx context.Context, room string, limit int) ([]models.ChatMessage, error) {
	query := `
		SELECT id, user_id, username, message, room, timestamp
		FROM (
			SELECT m.id, m.user_id, u.username, m.message, m.room, m.timestamp
			FROM chat_messages m
			JOIN users u ON u.id = m.user_id
			WHERE m.room = $1
			ORDER BY m.timestamp DESC, m.id DESC
			LIMIT $2
		) recent
		ORDER BY timestamp, id
	`

	rows, err := r.db.QueryContext(ctx, query, room, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		err := rows.Scan(
			&m.ID,
			&m.UserID,
			&m.Username,
			&m.Message,
			&m.Room,
			&m.Timestamp,
		)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}
