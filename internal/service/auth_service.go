package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/RubachokBoss/school-service/internal/config"
	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error)
	// ParseToken validates a bearer token and returns the user id it was issued to.
	ParseToken(token string) (int64, error)
	CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// SystemAccount returns the account that authors anonymous actions. The
	// application seeds it at startup; later calls return the cached row.
	SystemAccount(ctx context.Context) (*models.User, error)
}

type authService struct {
	userRepo  repository.UserRepository
	validator *Validator
	cfg       config.AuthConfig
	now       func() time.Time
	logger    zerolog.Logger

	systemMu   sync.Mutex
	systemUser *models.User
}

func NewAuthService(userRepo repository.UserRepository, validator *Validator, cfg config.AuthConfig, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:  userRepo,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.TokenResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// System accounts have no password and cannot log in.
	if user == nil || user.IsSystem || user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("Token issued")

	return &models.TokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) issueToken(userID int64) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.cfg.TokenTTL)

	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    s.cfg.Issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *authService) ParseToken(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}

	if s.cfg.Issuer != "" && !claims.VerifyIssuer(s.cfg.Issuer, true) {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}

	return userID, nil
}

func (s *authService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err, repository.UsersUsernameKey) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Int64("user_id", user.ID).
		Str("username", user.Username).
		Msg("User created")

	return user, nil
}

func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *authService) SystemAccount(ctx context.Context) (*models.User, error) {
	s.systemMu.Lock()
	defer s.systemMu.Unlock()

	if s.systemUser != nil {
		return s.systemUser, nil
	}

	// Concurrent starts converge on one row through ON CONFLICT DO NOTHING.
	user, err := s.userRepo.EnsureSystem(ctx, &models.User{
		Username:  s.cfg.SystemUsername,
		Email:     s.cfg.SystemEmail,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure system account: %w", err)
	}
	if user == nil {
		return nil, errors.New("system account missing after insert")
	}

	s.systemUser = user
	return user, nil
}
