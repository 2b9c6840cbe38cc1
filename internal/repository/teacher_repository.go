package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

const TeachersUserIDKey = "teachers_user_id_key"

type TeacherRepository interface {
	Create(ctx context.Context, teacher *models.Teacher) error
	GetByID(ctx context.Context, id int64) (*models.TeacherWithStats, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.TeacherWithStats, int, error)
	Update(ctx context.Context, teacher *models.Teacher) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type teacherRepository struct {
	*PostgresRepository
}

func NewTeacherRepository(db *sql.DB, logger zerolog.Logger) TeacherRepository {
	return &teacherRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *teacherRepository) Create(ctx context.Context, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, name, bio, email, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		teacher.UserID,
		teacher.Name,
		teacher.Bio,
		teacher.Email,
		teacher.CreatedAt,
	).Scan(&teacher.ID)

	return translateError(err)
}

const teacherStatsSelect = `
		SELECT
			t.id, t.user_id, t.name, t.bio, t.email, t.created_at,
			COUNT(c.id) AS total_courses
		FROM teachers t
		LEFT JOIN courses c ON c.teacher_id = t.id
`

func scanTeacherWithStats(row interface{ Scan(...interface{}) error }, teacher *models.TeacherWithStats) error {
	return row.Scan(
		&teacher.ID,
		&teacher.UserID,
		&teacher.Name,
		&teacher.Bio,
		&teacher.Email,
		&teacher.CreatedAt,
		&teacher.TotalCourses,
	)
}

func (r *teacherRepository) GetByID(ctx context.Context, id int64) (*models.TeacherWithStats, error) {
	query := teacherStatsSelect + `
		WHERE t.id = $1
		GROUP BY t.id
	`

	teacher := &models.TeacherWithStats{}
	err := scanTeacherWithStats(r.db.QueryRowContext(ctx, query, id), teacher)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return teacher, nil
}

func (r *teacherRepository) GetAll(ctx context.Context, limit, offset int) ([]models.TeacherWithStats, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM teachers`)
	if err != nil {
		return nil, 0, err
	}

	query := teacherStatsSelect + `
		GROUP BY t.id
		ORDER BY t.name, t.id
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teachers := []models.TeacherWithStats{}
	for rows.Next() {
		var teacher models.TeacherWithStats
		if err := scanTeacherWithStats(rows, &teacher); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, teacher)
	}

	return teachers, total, rows.Err()
}

func (r *teacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET user_id = $1, name = $2, bio = $3, email = $4
		WHERE id = $5
	`

	return r.execAffecting(ctx, query,
		teacher.UserID,
		teacher.Name,
		teacher.Bio,
		teacher.Email,
		teacher.ID,
	)
}

// Delete removes the teacher; the database clears courses.teacher_id.
func (r *teacherRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM teachers WHERE id = $1`, id)
}

func (r *teacherRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS(SELECT 1 FROM teachers WHERE id = $1)`, id)
}
