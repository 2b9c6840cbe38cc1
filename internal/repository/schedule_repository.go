package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

type ScheduleRepository interface {
	Create(ctx context.Context, schedule *models.Schedule) error
	GetByID(ctx context.Context, id int64) (*models.Schedule, error)
	GetAll(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Schedule, int, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]models.Schedule, error)
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id int64) error
}

type scheduleRepository struct {
	*PostgresRepository
}

func NewScheduleRepository(db *sql.DB, logger zerolog.Logger) ScheduleRepository {
	return &scheduleRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

// Days sort Monday first rather than alphabetically.
const scheduleOrder = `
		ORDER BY array_position(ARRAY['mon','tue','wed','thu','fri','sat','sun']::varchar[], sc.day_of_week),
			sc.start_time, sc.id
`

const scheduleSelect = `
		SELECT
			sc.id, sc.course_id, c.title, sc.day_of_week,
			to_char(sc.start_time, 'HH24:MI'), to_char(sc.end_time, 'HH24:MI'),
			sc.classroom, sc.is_active
		FROM schedules sc
		JOIN courses c ON c.id = sc.course_id
`

func scanSchedule(row interface{ Scan(...interface{}) error }, s *models.Schedule) error {
	return row.Scan(
		&s.ID,
		&s.CourseID,
		&s.CourseTitle,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.Classroom,
		&s.IsActive,
	)
}

func (r *scheduleRepository) Create(ctx context.Context, s *models.Schedule) error {
	query := `
		INSERT INTO schedules (course_id, day_of_week, start_time, end_time, classroom, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		s.CourseID,
		s.DayOfWeek,
		s.StartTime,
		s.EndTime,
		s.Classroom,
		s.IsActive,
	).Scan(&s.ID)

	return translateError(err)
}

func (r *scheduleRepository) GetByID(ctx context.Context, id int64) (*models.Schedule, error) {
	s := &models.Schedule{}
	err := scanSchedule(r.db.QueryRowContext(ctx, scheduleSelect+`WHERE sc.id = $1`, id), s)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (r *scheduleRepository) list(ctx context.Context, query string, args ...interface{}) ([]models.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := []models.Schedule{}
	for rows.Next() {
		var s models.Schedule
		if err := scanSchedule(rows, &s); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}

	return schedules, rows.Err()
}

func (r *scheduleRepository) GetAll(ctx context.Context, activeOnly bool, limit, offset int) ([]models.Schedule, int, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM schedules WHERE is_active OR NOT $1`, activeOnly)
	if err != nil {
		return nil, 0, err
	}

	query := scheduleSelect + `WHERE sc.is_active OR NOT $1` + scheduleOrder + `LIMIT $2 OFFSET $3`

	schedules, err := r.list(ctx, query, activeOnly, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	return schedules, total, nil
}

func (r *scheduleRepository) GetByCourseID(ctx context.Context, courseID int64) ([]models.Schedule, error) {
	return r.list(ctx, scheduleSelect+`WHERE sc.course_id = $1`+scheduleOrder, courseID)
}

func (r *scheduleRepository) Update(ctx context.Context, s *models.Schedule) error {
	query := `
		UPDATE schedules
		SET course_id = $1, day_of_week = $2, start_time = $3, end_time = $4, classroom = $5, is_active = $6
		WHERE id = $7
	`

	return r.execAffecting(ctx, query,
		s.CourseID,
		s.DayOfWeek,
		s.StartTime,
		s.EndTime,
		s.Classroom,
		s.IsActive,
		s.ID,
	)
}

func (r *scheduleRepository) Delete(ctx context.Context, id int64) error {
	return r.execAffecting(ctx, `DELETE FROM schedules WHERE id = $1`, id)
}
