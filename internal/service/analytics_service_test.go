package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/repository"
)

type mockAnalyticsRepo struct {
	progress map[string][]repository.ProgressRow
	stats    map[string][]repository.QuestionStatRow
	errors   map[string][]repository.ErrorCountRow
	report   []models.ProgressReportRow
}

func (m *mockAnalyticsRepo) ProgressByAssignment(ctx context.Context, assignmentID string) ([]repository.ProgressRow, error) {
	return m.progress[assignmentID], nil
}

func (m *mockAnalyticsRepo) QuestionStats(ctx context.Context, assignmentID, studentID string) ([]repository.QuestionStatRow, error) {
	return m.stats[assignmentID+":"+studentID], nil
}

func (m *mockAnalyticsRepo) ErrorCountsByStudent(ctx context.Context, studentID string) ([]repository.ErrorCountRow, error) {
	return m.errors[studentID], nil
}

func (m *mockAnalyticsRepo) ProgressReport(ctx context.Context, assignmentID string) ([]models.ProgressReportRow, error) {
	return m.report, nil
}

type mockAnalyticsUsers struct {
	students map[string]models.Student
	names    []string
}

func (m *mockAnalyticsUsers) FindStudentByName(ctx context.Context, name string) (*models.Student, error) {
	if s, ok := m.students[name]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAnalyticsUsers) ListStudentNames(ctx context.Context) ([]string, error) {
	return m.names, nil
}

func TestAnalyticsServiceClassAnalysis(t *testing.T) {
	repo := &mockAnalyticsRepo{progress: map[string][]repository.ProgressRow{
		"a1": {
			{StudentID: "s1", SolvedQuestions: 3, Score: 80, TimeSpent: 120},
			{StudentID: "s2", SolvedQuestions: 2, Score: 60, TimeSpent: 90},
		},
	}}
	svc := NewAnalyticsService(repo, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	result, err := svc.ClassAnalysis(context.Background(), ClassAnalysisRequest{AssignmentID: "a1"})
	require.NoError(t, err)
	assert.InDelta(t, 105.0, result.AvgTime, 0.001)
	assert.InDelta(t, 70.0, result.AvgScore, 0.001)
	assert.Equal(t, map[int]int{3: 1, 2: 1}, result.QuestionDistribution)
	assert.Equal(t, []int{120, 90}, result.TimeDistribution)
	assert.Equal(t, []float64{80, 60}, result.ScoreDistribution)
}

func TestAnalyticsServiceClassAnalysisRounding(t *testing.T) {
	repo := &mockAnalyticsRepo{progress: map[string][]repository.ProgressRow{
		"a1": {
			{SolvedQuestions: 1, Score: 50, TimeSpent: 100},
			{SolvedQuestions: 1, Score: 50, TimeSpent: 100},
			{SolvedQuestions: 2, Score: 51, TimeSpent: 101},
		},
	}}
	svc := NewAnalyticsService(repo, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	result, err := svc.ClassAnalysis(context.Background(), ClassAnalysisRequest{AssignmentID: "a1"})
	require.NoError(t, err)
	assert.InDelta(t, 100.33, result.AvgTime, 0.001)
	assert.InDelta(t, 50.33, result.AvgScore, 0.001)
}

func TestAnalyticsServiceClassAnalysisEmpty(t *testing.T) {
	svc := NewAnalyticsService(&mockAnalyticsRepo{}, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	result, err := svc.ClassAnalysis(context.Background(), ClassAnalysisRequest{AssignmentID: "a1"})
	require.NoError(t, err)
	assert.Zero(t, result.AvgTime)
	assert.Zero(t, result.AvgScore)
	assert.Empty(t, result.QuestionDistribution)
	assert.NotNil(t, result.QuestionDistribution)
	assert.Empty(t, result.TimeDistribution)
	assert.Empty(t, result.ScoreDistribution)
}

func TestAnalyticsServiceStudentAnalysis(t *testing.T) {
	pt := 45
	repo := &mockAnalyticsRepo{
		stats: map[string][]repository.QuestionStatRow{
			"a1:s1": {
				{QuestionID: "q1", ParentTime: &pt, ParentAttempts: 2, FollowupAttempts: 1},
			},
		},
		errors: map[string][]repository.ErrorCountRow{
			"s1": {{Message: "IndexError", Count: 3}},
		},
	}
	users := &mockAnalyticsUsers{students: map[string]models.Student{"Ada": {ID: "s1", Name: "Ada"}}}
	svc := NewAnalyticsService(repo, users, nil, validator.New(), zap.NewNop())

	result, err := svc.StudentAnalysis(context.Background(), StudentAnalysisRequest{AssignmentID: "a1", StudentName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"q1": 45}, result.ParentTime)
	assert.Empty(t, result.FollowupTime)
	assert.Equal(t, map[string]int{"q1": 2}, result.ParentAtt)
	assert.Equal(t, map[string]int{"q1": 1}, result.FollowupAtt)
	assert.Equal(t, map[string]int{"IndexError": 3}, result.ErrorCounts)
}

func TestAnalyticsServiceStudentAnalysisUnknownName(t *testing.T) {
	svc := NewAnalyticsService(&mockAnalyticsRepo{}, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	result, err := svc.StudentAnalysis(context.Background(), StudentAnalysisRequest{AssignmentID: "a1", StudentName: "Nobody"})
	require.NoError(t, err)
	assert.NotNil(t, result.ParentTime)
	assert.Empty(t, result.ParentTime)
	assert.Empty(t, result.ErrorCounts)
}

func TestAnalyticsServiceStudentNames(t *testing.T) {
	users := &mockAnalyticsUsers{names: []string{"Ada", "Grace"}}
	svc := NewAnalyticsService(&mockAnalyticsRepo{}, users, nil, validator.New(), zap.NewNop())

	names, err := svc.StudentNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ada", "Grace"}, names)
}

func TestAnalyticsServiceExportCSV(t *testing.T) {
	repo := &mockAnalyticsRepo{report: []models.ProgressReportRow{
		{StudentID: "s1", StudentName: "Ada", TotalQuestions: 5, SolvedQuestions: 4, Score: 80, TimeSpent: 300},
	}}
	svc := NewAnalyticsService(repo, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	report, err := svc.ExportClassReport(context.Background(), "a1", ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", report.ContentType)
	assert.Contains(t, string(report.Data), "Ada")
	assert.Contains(t, string(report.Data), "80.00")
}

func TestAnalyticsServiceExportPDF(t *testing.T) {
	repo := &mockAnalyticsRepo{report: []models.ProgressReportRow{
		{StudentID: "s1", StudentName: "Ada", TotalQuestions: 5, SolvedQuestions: 4, Score: 80, TimeSpent: 300},
	}}
	svc := NewAnalyticsService(repo, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	report, err := svc.ExportClassReport(context.Background(), "a1", ExportPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", report.ContentType)
	assert.True(t, len(report.Data) > 0)
}

func TestAnalyticsServiceExportUnknownFormat(t *testing.T) {
	svc := NewAnalyticsService(&mockAnalyticsRepo{}, &mockAnalyticsUsers{}, nil, validator.New(), zap.NewNop())

	_, err := svc.ExportClassReport(context.Background(), "a1", ExportFormat("xlsx"))
	require.Error(t, err)
}
