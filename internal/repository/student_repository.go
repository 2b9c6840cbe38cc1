package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type StudentRepository interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.StudentWithStats, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.StudentWithStats, int, error)
	GetEnrollments(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error)
	Update(ctx context.Context, student *models.Student) error
	UpdatePhoto(ctx context.Context, id int64, photo string) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type studentRepository struct {
	*PostgresRepository
}

func NewStudentRepository(db *sql.DB, logger zerolog.Logger) StudentRepository {
	return &studentRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (name, age, email, photo, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		student.Name,
		student.Age,
		student.Email,
		student.Photo,
		student.CreatedAt,
	).Scan(&student.ID)

	return translateError(err)
}

const studentStatsSelect = `
		SELECT
			s.id, s.name, s.age, s.email, s.photo, s.created_at,
			COUNT(e.id) AS total_enrollments,
			AVG(g.score) AS avg_grade
		FROM students s
		LEFT JOIN enrollments e ON e.student_id = s.id
		LEFT JOIN grades g ON g.enrollment_id = e.id
`

func scanStudentWithStats(row interface{ Scan(...interface{}) error }, student *models.StudentWithStats) error {
	return row.Scan(
		&student.ID,
		&student.Name,
		&student.Age,
		&student.Email,
		&student.Photo,
		&student.CreatedAt,
		&student.TotalEnrollments,
		&student.AvgGrade,
	)
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*models.StudentWithStats, error) {
	query := studentStatsSelect + `
		WHERE s.id = $1
		GROUP BY s.id
	`

	student := &models.StudentWithStats{}
	err := scanStudentWithStats(r.db.QueryRowContext(ctx, query, id), student)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return student, nil
}

func (r *studentRepository) GetAll(ctx context.Context, limit, offset int) ([]models.StudentWithStats, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM students`)
	if err != nil {
		return nil, 0, err
	}

	query := studentStatsSelect + `
		GROUP BY s.id
		ORDER BY s.name, s.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := []models.StudentWithStats{}
	for rows.Next() {
		var student models.StudentWithStats
		if err := scanStudentWithStats(rows, &student); err != nil {
			return nil, 0, err
		}
		students = append(students, student)
	}

	return students, total, rows.Err()
}

func (r *studentRepository) GetEnrollments(ctx context.Context, studentID int64) ([]models.StudentEnrollment, error) {
	query := `
		SELECT
			e.id, c.id, c.title, c.code, e.enrolled_at,
			g.score, COALESCE(g.comment, '')
		FROM enrollments e
		JOIN courses c ON c.id = e.course_id
		LEFT JOIN grades g ON g.enrollment_id = e.id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at, e.id
	`

	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := []models.StudentEnrollment{}
	for rows.Next() {
		var e models.StudentEnrollment
		err := rows.Scan(
			&e.EnrollmentID,
			&e.CourseID,
			&e.CourseTitle,
			&e.CourseCode,
			&e.EnrolledAt,
			&e.Score,
			&e.Comment,
		)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}

	return enrollments, rows.Err()
}

func (r *studentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $1, age = $2, email = $3
		WHERE id = $4
	`

	return r.execAffecting(ctx, query,
		student.Name,
		student.Age,
		student.Email,
		student.ID,
	)
}

func (r *studentRepository) UpdatePhoto(ctx context.Context, id int64, photo string) error {
	return r.execAffecting(ctx, `UPDATE students SET photo = $1 WHERE id = $2`, photo, id)
}

func (r *studentRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM students WHERE id = $1`, id)
}

func (r *studentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id)
}
