package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

const GradesEnrollmentIDKey = "grades_enrollment_id_key"

type GradeRepository interface {
	Create(ctx context.Context, grade *models.Grade) error
	// Upsert creates the enrollment's grade or replaces its score and comment.
	Upsert(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.GradeWithDetails, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.GradeWithDetails, int, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

type gradeRepository struct {
	*PostgresRepository
}

func NewGradeRepository(db *sql.DB, logger zerolog.Logger) GradeRepository {
	return &gradeRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *gradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (enrollment_id, score, comment)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		grade.EnrollmentID,
		grade.Score,
		grade.Comment,
	).Scan(&grade.ID)

	return translateError(err)
}

func (r *gradeRepository) Upsert(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (enrollment_id, score, comment)
		VALUES ($1, $2, $3)
		ON CONFLICT (enrollment_id)
		DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		grade.EnrollmentID,
		grade.Score,
		grade.Comment,
	).Scan(&grade.ID)

	return translateError(err)
}

const gradeDetailsSelect = `
		SELECT
			g.id, g.enrollment_id, g.score, g.comment,
			s.id, s.name, c.id, c.title
		FROM grades g
		JOIN enrollments e ON e.id = g.enrollment_id
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
`

func scanGradeWithDetails(row interface{ Scan(...interface{}) error }, g *models.GradeWithDetails) error {
	return row.Scan(
		&g.ID,
		&g.EnrollmentID,
		&g.Score,
		&g.Comment,
		&g.StudentID,
		&g.StudentName,
		&g.CourseID,
		&g.CourseTitle,
	)
}

func (r *gradeRepository) GetByID(ctx context.Context, id int64) (*models.GradeWithDetails, error) {
	query := gradeDetailsSelect + `WHERE g.id = $1`

	g := &models.GradeWithDetails{}
	err := scanGradeWithDetails(r.db.QueryRowContext(ctx, query, id), g)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return g, nil
}

func (r *gradeRepository) GetAll(ctx context.Context, limit, offset int) ([]models.GradeWithDetails, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM grades`)
	if err != nil {
		return nil, 0, err
	}

	query := gradeDetailsSelect + `
		ORDER BY g.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	grades := []models.GradeWithDetails{}
	for rows.Next() {
		var g models.GradeWithDetails
		if err := scanGradeWithDetails(rows, &g); err != nil {
			return nil, 0, err
		}
		grades = append(grades, g)
	}

	return grades, total, rows.Err()
}

func (r *gradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET enrollment_id = $1, score = $2, comment = $3
		WHERE id = $4
	`

	return r.execAffecting(ctx, query,
		grade.EnrollmentID,
		grade.Score,
		grade.Comment,
		grade.ID,
	)
}

func (r *gradeRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM grades WHERE id = $1`, id)
}
