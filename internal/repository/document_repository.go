package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	GetAll(ctx context.Context, courseID *int64, limit, offset int) ([]models.Document, int, error)
	Update(ctx context.Context, document *models.Document) error
	Delete(ctx context.Context, id int64) error
}

type documentRepository struct {
	*PostgresRepository
}

func NewDocumentRepository(db *sql.DB, logger zerolog.Logger) DocumentRepository {
	return &documentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *documentRepository) Create(ctx context.Context, d *models.Document) error {
	query := `
		INSERT INTO documents (title, description, file_key, file_name, file_size, file_type, course_id, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		d.Title,
		d.Description,
		d.FileKey,
		d.FileName,
		d.FileSize,
		d.FileType,
		d.CourseID,
		d.UploadedBy,
		d.UploadedAt,
	).Scan(&d.ID)

	return translateError(err)
}

const documentSelect = `
		SELECT
			d.id, d.title, d.description, d.file_key, d.file_name, d.file_size, d.file_type,
			d.course_id, c.title, d.uploaded_by, d.uploaded_at
		FROM documents d
		LEFT JOIN courses c ON c.id = d.course_id
`

func scanDocument(row interface{ Scan(...interface{}) error }, d *models.Document) error {
	return row.Scan(
		&d.ID,
		&d.Title,
		&d.Description,
		&d.FileKey,
		&d.FileName,
		&d.FileSize,
		&d.FileType,
		&d.CourseID,
		&d.CourseTitle,
		&d.UploadedBy,
		&d.UploadedAt,
	)
}

func (r *documentRepository) GetByID(ctx context.Context, id int64) (*models.Document, error) {
	d := &models.Document{}
	err := scanDocument(r.db.QueryRowContext(ctx, documentSelect+`WHERE d.id = $1`, id), d)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return d, nil
}

// GetAll lists documents newest first, optionally restricted to one course.
func (r *documentRepository) GetAll(ctx context.Context, courseID *int64, limit, offset int) ([]models.Document, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM documents WHERE $1::bigint IS NULL OR course_id = $1`, courseID)
	if err != nil {
		return nil, 0, err
	}

	query := documentSelect + `
		WHERE $1::bigint IS NULL OR d.course_id = $1
		ORDER BY d.uploaded_at DESC, d.id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, courseID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		var d models.Document
		if err := scanDocument(rows, &d); err != nil {
			return nil, 0, err
		}
		documents = append(documents, d)
	}

	return documents, total, rows.Err()
}

// Update rewrites the editable metadata; file columns and uploaded_at are untouched.
func (r *documentRepository) Update(ctx context.Context, d *models.Document) error {
	query := `
		UPDATE documents
		SET title = $1, description = $2, file_type = $3, course_id = $4
		WHERE id = $5
	`

	return r.execAffecting(ctx, query,
		d.Title,
		d.Description,
		d.FileType,
		d.CourseID,
		d.ID,
	)
}

func (r *documentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM documents WHERE id = $1`, id)
}
