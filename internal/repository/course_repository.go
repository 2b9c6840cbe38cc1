package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

const CoursesCodeKey = "courses_code_key"

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id int64) (*models.CourseWithDetails, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.CourseWithDetails, int, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type courseRepository struct {
	*PostgresRepository
}

func NewCourseRepository(db *sql.DB, logger zerolog.Logger) CourseRepository {
	return &courseRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (title, code, description, teacher_id, duration, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		course.Title,
		course.Code,
		course.Description,
		course.TeacherID,
		course.Duration,
		course.CreatedAt,
	).Scan(&course.ID)

	return translateError(err)
}

const courseDetailsSelect = `
		SELECT
			c.id, c.title, c.code, c.description, c.teacher_id, c.duration, c.created_at,
			t.name AS teacher_name,
			COUNT(e.id) AS student_count
		FROM courses c
		LEFT JOIN teachers t ON t.id = c.teacher_id
		LEFT JOIN enrollments e ON e.course_id = c.id
`

func scanCourseWithDetails(row interface{ Scan(...interface{}) error }, course *models.CourseWithDetails) error {
	return row.Scan(
		&course.ID,
		&course.Title,
		&course.Code,
		&course.Description,
		&course.TeacherID,
		&course.Duration,
		&course.CreatedAt,
		&course.TeacherName,
		&course.StudentCount,
	)
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (*models.CourseWithDetails, error) {
	query := courseDetailsSelect + `
		WHERE c.id = $1
		GROUP BY c.id, t.name
	`

	course := &models.CourseWithDetails{}
	err := scanCourseWithDetails(r.db.QueryRowContext(ctx, query, id), course)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return course, nil
}

func (r *courseRepository) GetAll(ctx context.Context, limit, offset int) ([]models.CourseWithDetails, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM courses`)
	if err != nil {
		return nil, 0, err
	}

	query := courseDetailsSelect + `
		GROUP BY c.id, t.name
		ORDER BY c.created_at DESC, c.id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	courses := []models.CourseWithDetails{}
	for rows.Next() {
		var course models.CourseWithDetails
		if err := scanCourseWithDetails(rows, &course); err != nil {
			return nil, 0, err
		}
		courses = append(courses, course)
	}

	return courses, total, rows.Err()
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET title = $1, code = $2, description = $3, teacher_id = $4, duration = $5
		WHERE id = $6
	`

	return r.execAffecting(ctx, query,
		course.Title,
		course.Code,
		course.Description,
		course.TeacherID,
		course.Duration,
		course.ID,
	)
}

// Delete removes the course. Enrollments, schedules and assignments cascade;
// documents keep their row with course_id cleared.
func (r *courseRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM courses WHERE id = $1`, id)
}

func (r *courseRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1)`, id)
}
