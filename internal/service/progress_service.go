package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type progressRepository interface {
	Create(ctx context.Context, progress *models.AssignmentProgress) error
	LogError(ctx context.Context, studentID, message string) error
}

// SubmitProgressRequest is one finished attempt session.
type SubmitProgressRequest struct {
	AssignmentID    string   `json:"assignment_id" validate:"required"`
	TotalQuestions  int      `json:"total_questions" validate:"required,min=1"`
	SolvedQuestions int      `json:"solved_questions" validate:"min=0"`
	Score           float64  `json:"score" validate:"min=0"`
	TimeSpent       int      `json:"time" validate:"min=0"`
	Errors          []string `json:"errors"`
}

// ProgressService records attempt summaries and the per-student error log
// that the analytics aggregation later reads.
type ProgressService struct {
	repo      progressRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProgressService constructs ProgressService.
func NewProgressService(repo progressRepository, validate *validator.Validate, logger *zap.Logger) *ProgressService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{repo: repo, validator: validate, logger: logger}
}

// Submit stores the session summary and appends its error messages to the
// student's log. Error-log failures are logged but do not fail the submit;
// the summary row is the record the analytics depend on.
func (s *ProgressService) Submit(ctx context.Context, studentID string, req SubmitProgressRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "assignment id and question counts are required")
	}

	progress := &models.AssignmentProgress{
		AssignmentID:    req.AssignmentID,
		StudentID:       studentID,
		TotalQuestions:  req.TotalQuestions,
		SolvedQuestions: req.SolvedQuestions,
		Score:           req.Score,
		TimeSpent:       req.TimeSpent,
		Errors:          req.Errors,
	}
	if err := s.repo.Create(ctx, progress); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record progress")
	}

	for _, message := range req.Errors {
		if message == "" {
			continue
		}
		if err := s.repo.LogError(ctx, studentID, message); err != nil {
			s.logger.Warn("error log write failed",
				zap.String("student_id", studentID),
				zap.Error(err),
			)
		}
	}

	return nil
}
