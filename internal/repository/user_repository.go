package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

const UsersUsernameKey = "users_username_key"

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	// EnsureSystem inserts the system account unless the username exists and
	// returns the stored row either way.
	EnsureSystem(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type userRepository struct {
	*PostgresRepository
}

func NewUserRepository(db *sql.DB, logger zerolog.Logger) UserRepository {
	return &userRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const userColumns = `id, username, email, password_hash, is_system, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.IsSystem,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash, is_system, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.IsSystem,
		user.CreatedAt,
	).Scan(&user.ID)

	return translateError(err)
}

func (r *userRepository) EnsureSystem(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, is_system, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
		ON CONFLICT (username) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	); err != nil {
		return nil, translateError(err)
	}

	return r.GetByUsername(ctx, user.Username)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}
