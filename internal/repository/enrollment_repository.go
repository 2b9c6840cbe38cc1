package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

// EnrollmentsStudentCourseKey is the unique (student_id, course_id) constraint.
const EnrollmentsStudentCourseKey = "enrollments_student_course_key"

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.EnrollmentWithDetails, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.EnrollmentWithDetails, int, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]models.EnrollmentWithDetails, error)
	Update(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type enrollmentRepository struct {
	*PostgresRepository
}

func NewEnrollmentRepository(db *sql.DB, logger zerolog.Logger) EnrollmentRepository {
	return &enrollmentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Create relies on the unique constraint, so concurrent duplicates fail
// with a DuplicateError for EnrollmentsStudentCourseKey.
func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, enrolled_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.EnrolledAt,
	).Scan(&enrollment.ID)

	return translateError(err)
}

const enrollmentDetailsSelect = `
		SELECT
			e.id, e.student_id, e.course_id, e.enrolled_at,
			s.name AS student_name,
			c.title AS course_title,
			g.id AS grade_id, g.score, COALESCE(g.comment, '')
		FROM enrollments e
		JOIN students s ON s.id = e.student_id
		JOIN courses c ON c.id = e.course_id
		LEFT JOIN grades g ON g.enrollment_id = e.id
`

func scanEnrollmentWithDetails(row interface{ Scan(...interface{}) error }, e *models.EnrollmentWithDetails) error {
	return row.Scan(
		&e.ID,
		&e.StudentID,
		&e.CourseID,
		&e.EnrolledAt,
		&e.StudentName,
		&e.CourseTitle,
		&e.GradeID,
		&e.Score,
		&e.Comment,
	)
}

func (r *enrollmentRepository) queryDetails(ctx context.Context, query string, args ...interface{}) ([]models.EnrollmentWithDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []models.EnrollmentWithDetails{}
	for rows.Next() {
		var e models.EnrollmentWithDetails
		if err := scanEnrollmentWithDetails(rows, &e); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id int64) (*models.EnrollmentWithDetails, error) {
	query := enrollmentDetailsSelect + `WHERE e.id = $1`

	e := &models.EnrollmentWithDetails{}
	err := scanEnrollmentWithDetails(r.db.QueryRowContext(ctx, query, id), e)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return e, nil
}

func (r *enrollmentRepository) GetAll(ctx context.Context, limit, offset int) ([]models.EnrollmentWithDetails, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM enrollments`)
	if err != nil {
		return nil, 0, err
	}

	query := enrollmentDetailsSelect + `
		ORDER BY e.enrolled_at DESC, e.id DESC
		LIMIT $1 OFFSET $2
	`

	enrollments, err := r.queryDetails(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return enrollments, total, nil
}

func (r *enrollmentRepository) GetByCourseID(ctx context.Context, courseID int64) ([]models.EnrollmentWithDetails, error) {
	query := enrollmentDetailsSelect + `
		WHERE e.course_id = $1
		ORDER BY s.name, e.id
	`

	return r.queryDetails(ctx, query, courseID)
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		UPDATE enrollments
		SET student_id = $1, course_id = $2
		WHERE id = $3
	`

	return r.execAffecting(ctx, query,
		enrollment.StudentID,
		enrollment.CourseID,
		enrollment.ID,
	)
}

// Delete removes the enrollment and, through the cascade, its grade.
func (r *enrollmentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
}

func (r *enrollmentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM enrollments WHERE id = $1)`, id)
}
