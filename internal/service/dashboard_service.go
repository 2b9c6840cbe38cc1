package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/internal/models"
	"github.com/RubachokBoss/school-service/internal/repository"
)

const maxTopStudents = 100

// DashboardService computes school-wide aggregates. Nothing is cached; every
// call reflects the current data.
type DashboardService interface {
	GetDashboard(ctx context.Context, top int) (*models.Dashboard, error)
	Totals(ctx context.Context) (models.Totals, error)
	AverageScore(ctx context.Context) (float64, error)
	TopStudents(ctx context.Context, top int) ([]models.TopStudent, error)
	CourseStatistics(ctx context.Context) ([]models.CourseStatistic, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	logger        zerolog.Logger
}

func NewDashboardService(dashboardRepo repository.DashboardRepository, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		logger:        logger,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, top int) (*models.Dashboard, error) {
	dashboard, err := s.dashboardRepo.Snapshot(ctx, clampTop(top))
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	dashboard.AvgScore = round2(dashboard.AvgScore)
	decorateTopStudents(dashboard.TopStudents)
	decorateCourseStatistics(dashboard.CourseStats)

	s.logger.Debug().
		Int("students", dashboard.Students).
		Int("courses", dashboard.Courses).
		Int("teachers", dashboard.Teachers).
		Float64("avg_score", dashboard.AvgScore).
		Msg("Dashboard computed")

	return dashboard, nil
}

func (s *dashboardService) Totals(ctx context.Context) (models.Totals, error) {
	totals, err := s.dashboardRepo.Totals(ctx)
	if err != nil {
		return models.Totals{}, fmt.Errorf("failed to count totals: %w", err)
	}
	return totals, nil
}

func (s *dashboardService) AverageScore(ctx context.Context) (float64, error) {
	avg, err := s.dashboardRepo.AverageScore(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to compute average score: %w", err)
	}
	return round2(avg), nil
}

func (s *dashboardService) TopStudents(ctx context.Context, top int) ([]models.TopStudent, error) {
	students, err := s.dashboardRepo.TopStudents(ctx, clampTop(top))
	if err != nil {
		return nil, fmt.Errorf("failed to rank students: %w", err)
	}
	decorateTopStudents(students)
	return students, nil
}

func (s *dashboardService) CourseStatistics(ctx context.Context) ([]models.CourseStatistic, error) {
	stats, err := s.dashboardRepo.CourseStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute course statistics: %w", err)
	}
	decorateCourseStatistics(stats)
	return stats, nil
}

// clampTop maps zero (parameter absent) to the default and bounds the rest
// to 1..100, so negative values become 1.
func clampTop(top int) int {
	switch {
	case top == 0:
		return models.DefaultTopStudents
	case top < 1:
		return 1
	case top > maxTopStudents:
		return maxTopStudents
	default:
		return top
	}
}

// Bands are taken from the unrounded averages; rounding is display only.
func decorateTopStudents(students []models.TopStudent) {
	for i := range students {
		students[i].Band = models.ScoreBand(&students[i].AvgGrade)
		students[i].AvgGrade = round2(students[i].AvgGrade)
	}
}

func decorateCourseStatistics(stats []models.CourseStatistic) {
	for i := range stats {
		stats[i].Band = models.ScoreBand(stats[i].AvgGrade)
		stats[i].AvgGrade = models.RoundScore(stats[i].AvgGrade)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
