package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/school-service/internal/models"
)

func TestDashboardService_GetDashboard(t *testing.T) {
	repo := &fakeDashboardRepo{snapshot: &models.Dashboard{
		Totals:   models.Totals{Students: 3, Courses: 2, Teachers: 1},
		AvgScore: 78.3333333,
		TopStudents: []models.TopStudent{
			{ID: 2, Name: "Bob", AvgGrade: 92.5},
			{ID: 1, Name: "Ann", AvgGrade: 71.6666666},
		},
		CourseStats: []models.CourseStatistic{
			{ID: 1, Title: "Algebra", StudentCount: 2, AvgGrade: ptr(49.996)},
			{ID: 2, Title: "Biology", StudentCount: 0, AvgGrade: nil},
		},
	}}
	svc := NewDashboardService(repo, testLogger)

	dashboard, err := svc.GetDashboard(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultTopStudents, repo.topLimit)
	assert.Equal(t, 3, dashboard.Students)
	assert.Equal(t, 78.33, dashboard.AvgScore)

	require.Len(t, dashboard.TopStudents, 2)
	assert.Equal(t, models.BandExcellent, dashboard.TopStudents[0].Band)
	assert.Equal(t, 71.67, dashboard.TopStudents[1].AvgGrade)
	assert.Equal(t, models.BandGood, dashboard.TopStudents[1].Band)

	require.Len(t, dashboard.CourseStats, 2)
	assert.Equal(t, 50.0, *dashboard.CourseStats[0].AvgGrade)
	assert.Equal(t, models.BandCritical, dashboard.CourseStats[0].Band)
	assert.Nil(t, dashboard.CourseStats[1].AvgGrade)
	assert.Equal(t, models.BandNeutral, dashboard.CourseStats[1].Band)
}

func TestDashboardService_BandsUseUnroundedAverages(t *testing.T) {
	repo := &fakeDashboardRepo{snapshot: &models.Dashboard{
		TopStudents: []models.TopStudent{
			{ID: 1, Name: "Ann", AvgGrade: 89.996},
			{ID: 2, Name: "Bob", AvgGrade: 69.999},
		},
		CourseStats: []models.CourseStatistic{
			{ID: 1, Title: "Algebra", AvgGrade: ptr(49.996)},
			{ID: 2, Title: "Biology", AvgGrade: ptr(89.999)},
		},
	}}
	svc := NewDashboardService(repo, testLogger)

	dashboard, err := svc.GetDashboard(context.Background(), 5)
	require.NoError(t, err)

	tests := []struct {
		name    string
		display float64
		band    models.Band
		gotAvg  float64
		gotBand models.Band
	}{
		{"student just under excellent", 90.0, models.BandGood, dashboard.TopStudents[0].AvgGrade, dashboard.TopStudents[0].Band},
		{"student just under good", 70.0, models.BandWarning, dashboard.TopStudents[1].AvgGrade, dashboard.TopStudents[1].Band},
		{"course just under warning", 50.0, models.BandCritical, *dashboard.CourseStats[0].AvgGrade, dashboard.CourseStats[0].Band},
		{"course just under excellent", 90.0, models.BandGood, *dashboard.CourseStats[1].AvgGrade, dashboard.CourseStats[1].Band},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.display, tt.gotAvg)
			assert.Equal(t, tt.band, tt.gotBand)
		})
	}
}

func TestDashboardService_EmptySchool(t *testing.T) {
	repo := &fakeDashboardRepo{snapshot: &models.Dashboard{
		TopStudents: []models.TopStudent{},
		CourseStats: []models.CourseStatistic{},
	}}
	svc := NewDashboardService(repo, testLogger)

	dashboard, err := svc.GetDashboard(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, 0.0, dashboard.AvgScore)
	assert.Empty(t, dashboard.TopStudents)
	assert.Empty(t, dashboard.CourseStats)
}

func TestClampTop(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, models.DefaultTopStudents},
		{-3, 1},
		{1, 1},
		{10, 10},
		{100, 100},
		{1000, 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, clampTop(tt.in), "top=%d", tt.in)
	}
}

func TestDashboardService_TopStudents(t *testing.T) {
	repo := &fakeDashboardRepo{snapshot: &models.Dashboard{
		TopStudents: []models.TopStudent{{ID: 1, AvgGrade: 30}},
	}}
	svc := NewDashboardService(repo, testLogger)

	students, err := svc.TopStudents(context.Background(), 500)
	require.NoError(t, err)

	assert.Equal(t, maxTopStudents, repo.topLimit)
	assert.Equal(t, models.BandCritical, students[0].Band)
}
