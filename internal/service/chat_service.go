package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

type ChatService interface {
	// ListMessages returns the latest messages of a room, oldest first.
	ListMessages(ctx context.Context, room string) ([]models.ChatMessage, error)
	// PostMessage stores a message. A nil userID posts as the system account.
	PostMessage(ctx context.Context, room string, userID *int64, req *models.ChatMessageRequest) (*models.ChatMessage, error)
}

// SystemAccountProvider resolves the author of anonymous messages.
type SystemAccountProvider interface {
	SystemAccount(ctx context.Context) (*models.User, error)
}

type chatService struct {
	chatRepo  repository.ChatRepository
	userRepo  repository.UserRepository
	accounts  SystemAccountProvider
	validator *Validator
	logger    zerolog.Logger
}

func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	accounts SystemAccountProvider,
	validator *Validator,
	logger zerolog.Logger,
) ChatService {
	return &chatService{
		chatRepo:  chatRepo,
		userRepo:  userRepo,
		accounts:  accounts,
		validator: validator,
		logger:    logger,
	}
}

func (s *chatService) ListMessages(ctx context.Context, room string) ([]models.ChatMessage, error) {
	room, err := s.normalizeRoom(room)
	if err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.GetRecent(ctx, room, models.ChatHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get chat messages: %w", err)
	}
	return messages, nil
}

func (s *chatService) PostMessage(ctx context.Context, room string, userID *int64, req *models.ChatMessageRequest) (*models.ChatMessage, error) {
	room, err := s.normalizeRoom(room)
	if err != nil {
		return nil, err
	}

	req.Message = strings.TrimSpace(req.Message)
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}

	message := &models.ChatMessage{
		UserID:    author.ID,
		Username:  author.Username,
		Message:   req.Message,
		Room:      room,
		Timestamp: time.Now().UTC(),
	}

	if err := s.chatRepo.Create(ctx, message); err != nil {
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to save chat message: %w", err)
	}

	s.logger.Debug().
		Int64("message_id", message.ID).
		Int64("user_id", author.ID).
		Str("room", room).
		Msg("Chat message posted")

	return message, nil
}

func (s *chatService) author(ctx context.Context, userID *int64) (*models.User, error) {
	if userID == nil {
		return s.accounts.SystemAccount(ctx)
	}

	user, err := s.userRepo.GetByID(ctx, *userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *chatService) normalizeRoom(room string) (string, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		room = models.DefaultChatRoom
	}
	if err := s.validator.Var("room", room, fmt.Sprintf("max=%d,%s", models.MaxChatRoomNameLen, roomNameTag)); err != nil {
		return "", err
	}
	return room, nil
}
