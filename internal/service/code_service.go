package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/ai"
	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/runner"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type codeRunner interface {
	Run(ctx context.Context, language, code, stdin string) (*runner.Result, error)
}

type codeGrader interface {
	CheckCode(ctx context.Context, question, code, output string) (*ai.Verdict, error)
	Hints(ctx context.Context, question, code string) (*ai.HintSet, error)
}

// RunCodeRequest is a playground execution: run the code, then grade the
// output against the question.
type RunCodeRequest struct {
	Code     string `json:"code" validate:"required"`
	Language string `json:"language" validate:"required"`
	Input    string `json:"input"`
	Question string `json:"question"`
}

// RunCodeResult mirrors the execution contract the editor consumes.
// Approved is 1 or 0. Runner failures surface here with status "error",
// never as a transport-level failure.
type RunCodeResult struct {
	Status        string  `json:"status"`
	Message       string  `json:"message"`
	Exception     *string `json:"exception,omitempty"`
	Stdout        *string `json:"stdout"`
	Stderr        *string `json:"stderr"`
	ExecutionTime int     `json:"executionTime"`
	Approved      int     `json:"approved"`
	Reason        string  `json:"reason"`
}

// CheckRequest asks the grader for a verdict on already-produced output.
type CheckRequest struct {
	Question string `json:"ques" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Output   string `json:"output"`
}

// GenerateQuestionsRequest drives ad-hoc question authoring.
type GenerateQuestionsRequest struct {
	Objectives []string `json:"obj" validate:"required,min=1"`
	Count      int      `json:"no" validate:"required,min=1"`
	Language   string   `json:"lang" validate:"required"`
}

// FollowupRequest asks for a follow-up built on a question and code,
// without touching stored question rows.
type FollowupRequest struct {
	Question *models.QuestionPayload `json:"ques" validate:"required"`
	Code     string                  `json:"code" validate:"required"`
}

// HintRequest asks for progressive hints on a question.
type HintRequest struct {
	Question string `json:"ques" validate:"required"`
	Code     string `json:"code" validate:"required"`
}

// CodeService pairs the code runner with the model clients: execution,
// verdicts, ad-hoc generation and hints.
type CodeService struct {
	runner    codeRunner
	grader    codeGrader
	generator questionGenerator
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCodeService constructs CodeService. Metrics may be nil.
func NewCodeService(run codeRunner, grader codeGrader, generator questionGenerator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *CodeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CodeService{runner: run, grader: grader, generator: generator, metrics: metrics, validator: validate, logger: logger}
}

// RunCode executes the submission and, when it ran cleanly, grades the
// output. Runner failures are folded into the result with approved 0, so
// the editor always gets a renderable payload.
func (s *CodeService) RunCode(ctx context.Context, req RunCodeRequest) (*RunCodeResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "code and language are required")
	}

	result, err := s.runner.Run(ctx, req.Language, req.Code, req.Input)
	if err != nil {
		s.logger.Warn("runner call failed", zap.Error(err))
		msg := "Server error"
		empty := ""
		return &RunCodeResult{
			Status:   "error",
			Message:  msg,
			Stdout:   &empty,
			Stderr:   &empty,
			Approved: 0,
			Reason:   msg,
		}, nil
	}

	if result.Status != "success" {
		return &RunCodeResult{
			Status:        "error",
			Message:       "Code execution failed",
			Stdout:        result.Stdout,
			Stderr:        result.Stderr,
			ExecutionTime: result.ExecutionTime,
			Approved:      0,
			Reason:        "Code execution failed",
		}, nil
	}

	approved := 0
	reason := "Code execution failed"
	if result.Stderr == nil {
		output := ""
		if result.Stdout != nil {
			output = *result.Stdout
		}
		verdict, err := s.checkWithMetrics(ctx, req.Question, req.Code, output)
		if err != nil {
			return nil, s.gradingError(err, "failed to grade submission")
		}
		approved = verdict.Approved
		reason = verdict.Reason
	}

	return &RunCodeResult{
		Status:        "success",
		Message:       "Code executed successfully",
		Exception:     result.Exception,
		Stdout:        result.Stdout,
		Stderr:        result.Stderr,
		ExecutionTime: result.ExecutionTime,
		Approved:      approved,
		Reason:        reason,
	}, nil
}

// Check grades code and output against a question without executing it.
func (s *CodeService) Check(ctx context.Context, req CheckRequest) (*ai.Verdict, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "question and code are required")
	}

	verdict, err := s.checkWithMetrics(ctx, req.Question, req.Code, req.Output)
	if err != nil {
		return nil, s.gradingError(err, "failed to grade submission")
	}
	return verdict, nil
}

// GenerateQuestions authors a question set outside the stored lifecycle.
func (s *CodeService) GenerateQuestions(ctx context.Context, req GenerateQuestionsRequest) (*ai.GeneratedSet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "objectives, count and language are required")
	}

	start := time.Now()
	set, err := s.generator.GenerateQuestions(ctx, req.Objectives, req.Count, req.Language)
	s.metrics.ObserveModelCall("generate", err, time.Since(start))
	if err != nil {
		return nil, s.gradingError(err, "failed to generate questions")
	}
	return set, nil
}

// Followup produces a follow-up question without persisting it.
func (s *CodeService) Followup(ctx context.Context, req FollowupRequest) (*models.QuestionPayload, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "question and code are required")
	}

	start := time.Now()
	followup, err := s.generator.GenerateFollowup(ctx, req.Question, req.Code)
	s.metrics.ObserveModelCall("followup", err, time.Since(start))
	if err != nil {
		return nil, s.gradingError(err, "failed to generate follow-up question")
	}
	return followup, nil
}

// Hints returns three progressive hints for a stuck student.
func (s *CodeService) Hints(ctx context.Context, req HintRequest) (*ai.HintSet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "question and code are required")
	}

	start := time.Now()
	hints, err := s.grader.Hints(ctx, req.Question, req.Code)
	s.metrics.ObserveModelCall("hints", err, time.Since(start))
	if err != nil {
		return nil, s.gradingError(err, "failed to generate hints")
	}
	return hints, nil
}

func (s *CodeService) checkWithMetrics(ctx context.Context, question, code, output string) (*ai.Verdict, error) {
	start := time.Now()
	verdict, err := s.grader.CheckCode(ctx, question, code, output)
	s.metrics.ObserveModelCall("check", err, time.Since(start))
	return verdict, err
}

// gradingError maps model client failures onto the retriable contract the
// editor understands.
func (s *CodeService) gradingError(err error, message string) error {
	s.logger.Warn("model call failed", zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrGenerationRetry.Code, appErrors.ErrGenerationRetry.Status, message)
}
