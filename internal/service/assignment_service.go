package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type assignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
}

type courseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// CreateAssignmentRequest mirrors the teacher-facing creation form.
// Objectives arrive as one comma-separated string.
type CreateAssignmentRequest struct {
	Title      string `json:"title" validate:"required"`
	CourseID   string `json:"courseId" validate:"required"`
	Questions  int    `json:"questions" validate:"required,gt=0"`
	Language   string `json:"language"`
	Objectives string `json:"objectives"`
	DueDate    string `json:"dueDate" validate:"required"`
}

// AssignmentSummary is the creation response body.
type AssignmentSummary struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	Course     string            `json:"course"`
	Questions  int               `json:"questions"`
	Language   string            `json:"language"`
	Objectives models.StringList `json:"objectives"`
	DueDate    string            `json:"dueDate"`
}

// AssignmentService orchestrates assignment creation and listing.
type AssignmentService struct {
	repo      assignmentRepository
	courses   courseReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(repo assignmentRepository, courses courseReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// Create validates the form, splits the objectives string and persists the
// assignment.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*AssignmentSummary, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid date format, use YYYY-MM-DD")
	}

	if _, err := s.courses.FindByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	language := req.Language
	if language == "" {
		language = "python"
	}

	assignment := &models.Assignment{
		Name:          req.Title,
		QuestionCount: req.Questions,
		Language:      language,
		Objectives:    splitObjectives(req.Objectives),
		DueDate:       dueDate,
		CourseID:      req.CourseID,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	s.logger.Info("assignment created", zap.String("assignment_id", assignment.ID), zap.String("course_id", req.CourseID))

	return &AssignmentSummary{
		Success:    true,
		Message:    "assignment created successfully",
		ID:         assignment.ID,
		Title:      assignment.Name,
		Course:     assignment.CourseID,
		Questions:  assignment.QuestionCount,
		Language:   assignment.Language,
		Objectives: assignment.Objectives,
		DueDate:    req.DueDate,
	}, nil
}

// ListByCourse returns the assignments attached to a course.
func (s *AssignmentService) ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error) {
	assignments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

func splitObjectives(raw string) models.StringList {
	parts := strings.Split(raw, ",")
	objectives := make(models.StringList, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			objectives = append(objectives, trimmed)
		}
	}
	return objectives
}
