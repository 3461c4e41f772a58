package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/repository"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/export"
)

type analyticsRepository interface {
	ProgressByAssignment(ctx context.Context, assignmentID string) ([]repository.ProgressRow, error)
	QuestionStats(ctx context.Context, assignmentID, studentID string) ([]repository.QuestionStatRow, error)
	ErrorCountsByStudent(ctx context.Context, studentID string) ([]repository.ErrorCountRow, error)
	ProgressReport(ctx context.Context, assignmentID string) ([]models.ProgressReportRow, error)
}

type analyticsUserRepository interface {
	FindStudentByName(ctx context.Context, name string) (*models.Student, error)
	ListStudentNames(ctx context.Context) ([]string, error)
}

// ClassAnalysisRequest identifies the assignment to aggregate.
type ClassAnalysisRequest struct {
	AssignmentID string `json:"id" validate:"required"`
}

// StudentAnalysisRequest looks the student up by display name, the way
// the dashboard picker submits it.
type StudentAnalysisRequest struct {
	AssignmentID string `json:"id" validate:"required"`
	StudentName  string `json:"name" validate:"required"`
}

// ExportFormat enumerates the report encodings.
type ExportFormat string

// Supported export encodings.
const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportedReport is a rendered report plus its HTTP metadata.
type ExportedReport struct {
	ContentType string
	Filename    string
	Data        []byte
}

// AnalyticsService aggregates progress rows into class and per-student
// views and renders downloadable reports.
type AnalyticsService struct {
	repo      analyticsRepository
	users     analyticsUserRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnalyticsService constructs AnalyticsService. Cache may be nil.
func NewAnalyticsService(repo analyticsRepository, users analyticsUserRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AnalyticsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, users: users, cache: cache, validator: validate, logger: logger}
}

// ClassAnalysis aggregates every student's progress on one assignment.
// With no progress rows yet the result carries zero averages and empty
// distributions rather than an error.
func (s *AnalyticsService) ClassAnalysis(ctx context.Context, req ClassAnalysisRequest) (*models.ClassAnalytics, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "assignment id is required")
	}

	cacheKey := fmt.Sprintf("analytics:class:%s", req.AssignmentID)
	if s.cache.Enabled() {
		var cached models.ClassAnalytics
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	rows, err := s.repo.ProgressByAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load class progress")
	}

	result := &models.ClassAnalytics{
		QuestionDistribution: map[int]int{},
		TimeDistribution:     []int{},
		ScoreDistribution:    []float64{},
	}
	if len(rows) > 0 {
		var totalTime int
		var totalScore float64
		for _, row := range rows {
			totalTime += row.TimeSpent
			totalScore += row.Score
			result.QuestionDistribution[row.SolvedQuestions]++
			result.TimeDistribution = append(result.TimeDistribution, row.TimeSpent)
			result.ScoreDistribution = append(result.ScoreDistribution, row.Score)
		}
		result.AvgTime = round2(float64(totalTime) / float64(len(rows)))
		result.AvgScore = round2(totalScore / float64(len(rows)))
	}

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, cacheKey, result, 0); err != nil {
			s.logger.Warn("class analytics cache write failed", zap.Error(err))
		}
	}

	return result, nil
}

// StudentAnalysis breaks down one student's work on the assignment. An
// unknown student name yields empty maps, not an error.
func (s *AnalyticsService) StudentAnalysis(ctx context.Context, req StudentAnalysisRequest) (*models.StudentAnalytics, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "assignment id and student name are required")
	}

	result := &models.StudentAnalytics{
		ParentTime:   map[string]int{},
		FollowupTime: map[string]int{},
		ParentAtt:    map[string]int{},
		FollowupAtt:  map[string]int{},
		ErrorCounts:  map[string]int{},
	}

	student, err := s.users.FindStudentByName(ctx, req.StudentName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return result, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}

	stats, err := s.repo.QuestionStats(ctx, req.AssignmentID, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question stats")
	}
	for _, stat := range stats {
		if stat.ParentTime != nil {
			result.ParentTime[stat.QuestionID] = *stat.ParentTime
		}
		if stat.FollowupTime != nil {
			result.FollowupTime[stat.QuestionID] = *stat.FollowupTime
		}
		result.ParentAtt[stat.QuestionID] = stat.ParentAttempts
		result.FollowupAtt[stat.QuestionID] = stat.FollowupAttempts
	}

	errorRows, err := s.repo.ErrorCountsByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load error counts")
	}
	for _, row := range errorRows {
		result.ErrorCounts[row.Message] = row.Count
	}

	return result, nil
}

// StudentNames lists every student display name for the analytics picker.
func (s *AnalyticsService) StudentNames(ctx context.Context) ([]string, error) {
	names, err := s.users.ListStudentNames(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list student names")
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ExportClassReport renders the assignment's progress table as CSV or PDF.
func (s *AnalyticsService) ExportClassReport(ctx context.Context, assignmentID string, format ExportFormat) (*ExportedReport, error) {
	if assignmentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assignment id is required")
	}

	rows, err := s.repo.ProgressReport(ctx, assignmentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress report")
	}

	table := export.Table{
		Columns: []string{"Student ID", "Student Name", "Total Questions", "Solved", "Score", "Time Spent (s)"},
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, []string{
			row.StudentID,
			row.StudentName,
			strconv.Itoa(row.TotalQuestions),
			strconv.Itoa(row.SolvedQuestions),
			strconv.FormatFloat(row.Score, 'f', 2, 64),
			strconv.Itoa(row.TimeSpent),
		})
	}

	switch format {
	case ExportCSV:
		data, err := export.RenderCSV(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportedReport{
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("assignment-%s-report.csv", assignmentID),
			Data:        data,
		}, nil
	case ExportPDF:
		data, err := export.RenderPDF(table, "Assignment Progress Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return &ExportedReport{
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("assignment-%s-report.pdf", assignmentID),
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
