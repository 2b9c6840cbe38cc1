package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *models.Announcement) error
	GetByID(ctx context.Context, id int64) (*models.Announcement, error)
	GetAll(ctx context.Context, includeHidden bool, limit, offset int) ([]models.Announcement, int, error)
	Update(ctx context.Context, announcement *models.Announcement) error
	Delete(ctx context.Context, id int64) error
}

type announcementRepository struct {
	*PostgresRepository
}

func NewAnnouncementRepository(db *sql.DB, logger zerolog.Logger) AnnouncementRepository {
	return &announcementRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *announcementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := `
		INSERT INTO announcements (title, content, author_id, created_at, visible)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		a.Title,
		a.Content,
		a.AuthorID,
		a.CreatedAt,
		a.Visible,
	).Scan(&a.ID)

	return translateError(err)
}

const announcementSelect = `
		SELECT a.id, a.title, a.content, a.author_id, u.username, a.created_at, a.visible
		FROM announcements a
		LEFT JOIN users u ON u.id = a.author_id
`

func scanAnnouncement(row interface{ Scan(...interface{}) error }, a *models.Announcement) error {
	return row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.AuthorID,
		&a.AuthorName,
		&a.CreatedAt,
		&a.Visible,
	)
}

func (r *announcementRepository) GetByID(ctx context.Context, id int64) (*models.Announcement, error) {
	a := &models.Announcement{}
	err := scanAnnouncement(r.db.QueryRowContext(ctx, announcementSelect+`WHERE a.id = $1`, id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (r *announcementRepository) GetAll(ctx context.Context, includeHidden bool, limit, offset int) ([]models.Announcement, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM announcements WHERE visible OR $1`, includeHidden)
	if err != nil {
		return nil, 0, err
	}

	query := announcementSelect + `
		WHERE a.visible OR $1
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, includeHidden, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	announcements := []models.Announcement{}
	for rows.Next() {
		var a models.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, 0, err
		}
		announcements = append(announcements, a)
	}

	return announcements, total, rows.Err()
}

func (r *announcementRepository) Update(ctx context.Context, a *models.Announcement) error {
	query := `
		UPDATE announcements
		SET title = $1, content = $2, visible = $3
		WHERE id = $4
	`

	return r.execAffecting(ctx, query, a.Title, a.Content, a.Visible, a.ID)
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM announcements WHERE id = $1`, id)
}
