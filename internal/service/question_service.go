package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/ai"
	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type questionRepository interface {
	ListByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) ([]models.Question, error)
	FindByID(ctx context.Context, id string) (*models.Question, error)
	InsertBatch(ctx context.Context, questions []models.Question) error
	SetFollowup(ctx context.Context, id string, followup *models.QuestionPayload) error
}

type assignmentReader interface {
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
}

type questionGenerator interface {
	GenerateQuestions(ctx context.Context, objectives []string, count int, language string) (*ai.GeneratedSet, error)
	GenerateFollowup(ctx context.Context, parent *models.QuestionPayload, code string) (*models.QuestionPayload, error)
}

// ParentQuestionRequest fetches (or first generates) a student's set.
type ParentQuestionRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
}

// FollowupQuestionRequest asks for the follow-up to one question.
type FollowupQuestionRequest struct {
	QuestionID string                  `json:"question_id" validate:"required"`
	Parent     *models.QuestionPayload `json:"parent_question"`
	Code       string                  `json:"code" validate:"required"`
}

// QuestionService manages the per-student question lifecycle:
// no-parent -> parent-generated -> optional followup-generated.
type QuestionService struct {
	repo        questionRepository
	assignments assignmentReader
	generator   questionGenerator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewQuestionService constructs QuestionService.
func NewQuestionService(repo questionRepository, assignments assignmentReader, generator questionGenerator, validate *validator.Validate, logger *zap.Logger) *QuestionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{repo: repo, assignments: assignments, generator: generator, validator: validate, logger: logger}
}

// ParentQuestions returns the student's questions for the assignment,
// generating and persisting them on first access. The storage layer's
// uniqueness constraint absorbs concurrent first access, so a parallel
// request may also invoke the generator but cannot duplicate rows; the
// stored set is re-read after insert to return one consistent view.
func (s *QuestionService) ParentQuestions(ctx context.Context, studentID string, req ParentQuestionRequest) ([]models.Question, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "assignment id is required")
	}

	existing, err := s.repo.ListByAssignmentAndStudent(ctx, req.AssignmentID, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load questions")
	}
	if len(existing) > 0 {
		return existing, nil
	}

	assignment, err := s.assignments.FindByID(ctx, req.AssignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	set, err := s.generator.GenerateQuestions(ctx, assignment.Objectives, assignment.QuestionCount, assignment.Language)
	if err != nil {
		return nil, s.generationError(err, "question generation failed")
	}

	questions := make([]models.Question, 0, len(set.Questions))
	for i := range set.Questions {
		payload := set.Questions[i]
		if payload.Number == 0 {
			payload.Number = i + 1
		}
		questions = append(questions, models.Question{
			AssignmentID:     req.AssignmentID,
			StudentID:        studentID,
			Number:           payload.Number,
			Parent:           &payload,
			ParentAttempts:   1,
			FollowupAttempts: 1,
			Solved:           false,
		})
	}

	if err := s.repo.InsertBatch(ctx, questions); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist questions")
	}

	stored, err := s.repo.ListByAssignmentAndStudent(ctx, req.AssignmentID, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load questions")
	}

	s.logger.Info("questions generated",
		zap.String("assignment_id", req.AssignmentID),
		zap.String("student_id", studentID),
		zap.Int("count", len(stored)),
	)

	return stored, nil
}

// FollowupQuestion returns the cached follow-up for the question or
// generates and caches one. A follow-up, once stored, is never
// regenerated for the same row.
func (s *QuestionService) FollowupQuestion(ctx context.Context, studentID string, req FollowupQuestionRequest) (*models.QuestionPayload, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "question id and code are required")
	}

	question, err := s.repo.FindByID(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "parent question not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load question")
	}
	if question.StudentID != studentID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "question belongs to another student")
	}
	if question.Followup != nil {
		return question.Followup, nil
	}

	parent := req.Parent
	if parent == nil {
		parent = question.Parent
	}

	followup, err := s.generator.GenerateFollowup(ctx, parent, req.Code)
	if err != nil {
		return nil, s.generationError(err, "follow-up generation failed")
	}

	if err := s.repo.SetFollowup(ctx, question.ID, followup); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cache follow-up")
	}

	return followup, nil
}

// generationError maps model client failures onto the API contract: every
// generation failure is retriable from the client's point of view.
func (s *QuestionService) generationError(err error, message string) error {
	s.logger.Warn("model call failed", zap.Error(err))
	switch {
	case errors.Is(err, ai.ErrMalformedResponse),
		errors.Is(err, ai.ErrRateLimited),
		errors.Is(err, ai.ErrTimeout):
		return appErrors.Clone(appErrors.ErrGenerationRetry, message+", most likely due to invalid JSON. Retry")
	default:
		return appErrors.Wrap(err, appErrors.ErrGenerationRetry.Code, appErrors.ErrGenerationRetry.Status, message)
	}
}
