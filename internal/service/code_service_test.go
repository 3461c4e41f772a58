package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/ai"
	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/runner"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type mockRunner struct {
	result *runner.Result
	err    error
}

func (m *mockRunner) Run(ctx context.Context, language, code, stdin string) (*runner.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockGrader struct {
	verdict    *ai.Verdict
	hints      *ai.HintSet
	err        error
	checkCalls int
}

func (m *mockGrader) CheckCode(ctx context.Context, question, code, output string) (*ai.Verdict, error) {
	m.checkCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.verdict, nil
}

func (m *mockGrader) Hints(ctx context.Context, question, code string) (*ai.HintSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hints, nil
}

func strPtr(s string) *string { return &s }

func TestCodeServiceRunCodeCleanRun(t *testing.T) {
	run := &mockRunner{result: &runner.Result{Status: "success", Stdout: strPtr("42\n"), ExecutionTime: 12}}
	grader := &mockGrader{verdict: &ai.Verdict{Approved: 1, Reason: "Correct output"}}
	svc := NewCodeService(run, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	result, err := svc.RunCode(context.Background(), RunCodeRequest{Code: "print(42)", Language: "python", Question: "print the answer"})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 1, result.Approved)
	assert.Equal(t, "Correct output", result.Reason)
	assert.Equal(t, 12, result.ExecutionTime)
	assert.Equal(t, 1, grader.checkCalls)
}

func TestCodeServiceRunCodeStderrSkipsGrading(t *testing.T) {
	run := &mockRunner{result: &runner.Result{Status: "success", Stderr: strPtr("NameError"), ExecutionTime: 5}}
	grader := &mockGrader{verdict: &ai.Verdict{Approved: 1, Reason: "should not be used"}}
	svc := NewCodeService(run, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	result, err := svc.RunCode(context.Background(), RunCodeRequest{Code: "print(x)", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, 0, result.Approved)
	assert.Equal(t, "Code execution failed", result.Reason)
	assert.Zero(t, grader.checkCalls)
}

func TestCodeServiceRunCodeRunnerFailure(t *testing.T) {
	run := &mockRunner{result: &runner.Result{Status: "failed", Stderr: strPtr("compile error")}}
	svc := NewCodeService(run, &mockGrader{}, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	result, err := svc.RunCode(context.Background(), RunCodeRequest{Code: "x", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
	assert.Equal(t, 0, result.Approved)
}

func TestCodeServiceRunCodeTransportFailure(t *testing.T) {
	run := &mockRunner{err: errors.New("connection refused")}
	svc := NewCodeService(run, &mockGrader{}, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	result, err := svc.RunCode(context.Background(), RunCodeRequest{Code: "x", Language: "python"})
	require.NoError(t, err)
	assert.Equal(t, "error", result.Status)
	assert.Equal(t, "Server error", result.Message)
	assert.Equal(t, 0, result.Approved)
}

func TestCodeServiceRunCodeGraderFailureIsRetriable(t *testing.T) {
	run := &mockRunner{result: &runner.Result{Status: "success", Stdout: strPtr("42\n")}}
	grader := &mockGrader{err: ai.ErrMalformedResponse}
	svc := NewCodeService(run, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	_, err := svc.RunCode(context.Background(), RunCodeRequest{Code: "print(42)", Language: "python"})
	require.Error(t, err)
	assert.Equal(t, appErrors.StatusRetryGeneration, appErrors.FromError(err).Status)
}

func TestCodeServiceCheck(t *testing.T) {
	grader := &mockGrader{verdict: &ai.Verdict{Approved: 0, Reason: "Wrong output"}}
	svc := NewCodeService(&mockRunner{}, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	verdict, err := svc.Check(context.Background(), CheckRequest{Question: "sum two numbers", Code: "print(1)", Output: "1"})
	require.NoError(t, err)
	assert.Equal(t, 0, verdict.Approved)
	assert.Equal(t, "Wrong output", verdict.Reason)
}

func TestCodeServiceGenerateQuestions(t *testing.T) {
	generator := &mockGenerator{set: &ai.GeneratedSet{Questions: []models.QuestionPayload{{Number: 1, Title: "FizzBuzz"}}}}
	svc := NewCodeService(&mockRunner{}, &mockGrader{}, generator, nil, validator.New(), zap.NewNop())

	set, err := svc.GenerateQuestions(context.Background(), GenerateQuestionsRequest{Objectives: []string{"loops"}, Count: 1, Language: "python"})
	require.NoError(t, err)
	assert.Len(t, set.Questions, 1)
}

func TestCodeServiceFollowup(t *testing.T) {
	generator := &mockGenerator{followup: &models.QuestionPayload{Number: 1, Title: "FizzBuzz without modulo"}}
	svc := NewCodeService(&mockRunner{}, &mockGrader{}, generator, nil, validator.New(), zap.NewNop())

	followup, err := svc.Followup(context.Background(), FollowupRequest{Question: &models.QuestionPayload{Number: 1, Title: "FizzBuzz"}, Code: "print(1)"})
	require.NoError(t, err)
	assert.Equal(t, "FizzBuzz without modulo", followup.Title)
}

func TestCodeServiceHints(t *testing.T) {
	grader := &mockGrader{hints: &ai.HintSet{Hint1: "Read the input format", Hint2: "Use a loop", Hint3: "Check the last line"}}
	svc := NewCodeService(&mockRunner{}, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	hints, err := svc.Hints(context.Background(), HintRequest{Question: "sum two numbers", Code: "print(1)"})
	require.NoError(t, err)
	assert.Equal(t, "Use a loop", hints.Hint2)
}

func TestCodeServiceHintsFailureIsRetriable(t *testing.T) {
	grader := &mockGrader{err: ai.ErrTimeout}
	svc := NewCodeService(&mockRunner{}, grader, &mockGenerator{}, nil, validator.New(), zap.NewNop())

	_, err := svc.Hints(context.Background(), HintRequest{Question: "q", Code: "c"})
	require.Error(t, err)
	assert.Equal(t, appErrors.StatusRetryGeneration, appErrors.FromError(err).Status)
}
