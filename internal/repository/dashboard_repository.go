package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
)

// DashboardRepository runs the set-based aggregate queries behind the
// dashboard. Every method is a single roundtrip.
type DashboardRepository interface {
	Totals(ctx context.Context) (models.Totals, error)
	AverageScore(ctx context.Context) (float64, error)
	TopStudents(ctx context.Context, limit int) ([]models.TopStudent, error)
	CourseStatistics(ctx context.Context) ([]models.CourseStatistic, error)
	// Snapshot evaluates all aggregates inside one read-only transaction.
	Snapshot(ctx context.Context, topLimit int) (*models.Dashboard, error)
}

type dashboardRepository struct {
	*PostgresRepository
}

func NewDashboardRepository(db *sql.DB, logger zerolog.Logger) DashboardRepository {
	return &dashboardRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

const totalsQuery = `
	SELECT
		(SELECT COUNT(*) FROM students) AS total_students,
		(SELECT COUNT(*) FROM courses) AS total_courses,
		(SELECT COUNT(*) FROM teachers) AS total_teachers
`

// AVG skips NULL scores; COALESCE turns the empty set into 0.
const averageScoreQuery = `
	SELECT COALESCE(AVG(score), 0)
	FROM grades
	WHERE score IS NOT NULL
`

// Inner joins drop students without a graded enrollment.
const topStudentsQuery = `
	SELECT s.id, s.name, s.email, AVG(g.score) AS avg_grade
	FROM students s
	JOIN enrollments e ON e.student_id = s.id
	JOIN grades g ON g.enrollment_id = e.id
	WHERE g.score IS NOT NULL
	GROUP BY s.id, s.name, s.email
	ORDER BY avg_grade DESC, s.id ASC
	LIMIT $1
`

const courseStatisticsQuery = `
	SELECT
		c.id, c.title, c.code, t.name AS teacher_name,
		COUNT(e.id) AS student_count,
		AVG(g.score) AS avg_grade
	FROM courses c
	LEFT JOIN teachers t ON t.id = c.teacher_id
	LEFT JOIN enrollments e ON e.course_id = c.id
	LEFT JOIN grades g ON g.enrollment_id = e.id
	GROUP BY c.id, c.title, c.code, t.name
	ORDER BY c.id
`

func (r *dashboardRepository) Totals(ctx context.Context) (models.Totals, error) {
	return queryTotals(ctx, r.db)
}

func (r *dashboardRepository) AverageScore(ctx context.Context) (float64, error) {
	return queryAverageScore(ctx, r.db)
}

func (r *dashboardRepository) TopStudents(ctx context.Context, limit int) ([]models.TopStudent, error) {
	return queryTopStudents(ctx, r.db, limit)
}

func (r *dashboardRepository) CourseStatistics(ctx context.Context) ([]models.CourseStatistic, error) {
	return queryCourseStatistics(ctx, r.db)
}

func (r *dashboardRepository) Snapshot(ctx context.Context, topLimit int) (*models.Dashboard, error) {
	tx, err := r.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to begin dashboard transaction: %w", err)
	}
	defer tx.Rollback()

	dashboard := &models.Dashboard{}

	if dashboard.Totals, err = queryTotals(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to count totals: %w", err)
	}
	if dashboard.AvgScore, err = queryAverageScore(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to compute average score: %w", err)
	}
	if dashboard.TopStudents, err = queryTopStudents(ctx, tx, topLimit); err != nil {
		return nil, fmt.Errorf("failed to rank students: %w", err)
	}
	if dashboard.CourseStats, err = queryCourseStatistics(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to compute course statistics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit dashboard transaction: %w", err)
	}

	return dashboard, nil
}

func queryTotals(ctx context.Context, q queryer) (models.Totals, error) {
	var totals models.Totals
	err := q.QueryRowContext(ctx, totalsQuery).Scan(
		&totals.Students,
		&totals.Courses,
		&totals.Teachers,
	)
	return totals, err
}

func queryAverageScore(ctx context.Context, q queryer) (float64, error) {
	var avg float64
	err := q.QueryRowContext(ctx, averageScoreQuery).Scan(&avg)
	return avg, err
}

func queryTopStudents(ctx context.Context, q queryer, limit int) ([]models.TopStudent, error) {
	rows, err := q.QueryContext(ctx, topStudentsQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []models.TopStudent{}
	for rows.Next() {
		var s models.TopStudent
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.AvgGrade); err != nil {
			return nil, err
		}
		students = append(students, s)
	}

	return students, rows.Err()
}

func queryCourseStatistics(ctx context.Context, q queryer) ([]models.CourseStatistic, error) {
	rows, err := q.QueryContext(ctx, courseStatisticsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.CourseStatistic{}
	for rows.Next() {
		var s models.CourseStatistic
		err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Code,
			&s.TeacherName,
			&s.StudentCount,
			&s.AvgGrade,
		)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}
