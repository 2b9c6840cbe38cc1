package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id int64) (*models.Assignment, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.Assignment, int, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentRepository struct {
	*PostgresRepository
}

func NewAssignmentRepository(db *sql.DB, logger zerolog.Logger) AssignmentRepository {
	return &assignmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *assignmentRepository) Create(ctx context.Context, a *models.Assignment) error {
	query := `
		INSERT INTO assignments (course_id, title, description, due_date, max_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		a.CourseID,
		a.Title,
		a.Description,
		a.DueDate,
		a.MaxScore,
		a.CreatedAt,
	).Scan(&a.ID)

	return translateError(err)
}

const assignmentSelect = `
		SELECT id, course_id, title, description, due_date, max_score, created_at
		FROM assignments
`

func scanAssignment(row interface{ Scan(...interface{}) error }, a *models.Assignment) error {
	return row.Scan(
		&a.ID,
		&a.CourseID,
		&a.Title,
		&a.Description,
		&a.DueDate,
		&a.MaxScore,
		&a.CreatedAt,
	)
}

func (r *assignmentRepository) GetByID(ctx context.Context, id int64) (*models.Assignment, error) {
	a := &models.Assignment{}
	err := scanAssignment(r.db.QueryRowContext(ctx, assignmentSelect+`WHERE id = $1`, id), a)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (r *assignmentRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := []models.Assignment{}
	for rows.Next() {
		var a models.Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}

	return assignments, rows.Err()
}

func (r *assignmentRepository) GetAll(ctx context.Context, limit, offset int) ([]models.Assignment, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM assignments`)
	if err != nil {
		return nil, 0, err
	}

	assignments, err := r.list(ctx, assignmentSelect+`ORDER BY due_date, id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	return r.list(ctx, assignmentSelect+`WHERE course_id = $1 ORDER BY due_date, id`, courseID)
}

func (r *assignmentRepository) Update(ctx context.Context, a *models.Assignment) error {
	query := `
		UPDATE assignments
		SET course_id = $1, title = $2, description = $3, due_date = $4, max_score = $5
		WHERE id = $6
	`

	return r.execAffecting(ctx, query,
		a.CourseID,
		a.Title,
		a.Description,
		a.DueDate,
		a.MaxScore,
		a.ID,
	)
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM assignments WHERE id = $1`, id)
}
