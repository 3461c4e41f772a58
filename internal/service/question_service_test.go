package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/ai"
	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type mockQuestionRepo struct {
	questions map[string]models.Question
	nextID    int
	followups map[string]*models.QuestionPayload
}

func (m *mockQuestionRepo) ListByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) ([]models.Question, error) {
	var list []models.Question
	for _, q := range m.questions {
		if q.AssignmentID == assignmentID && q.StudentID == studentID {
			list = append(list, q)
		}
	}
	return list, nil
}

func (m *mockQuestionRepo) FindByID(ctx context.Context, id string) (*models.Question, error) {
	if q, ok := m.questions[id]; ok {
		return &q, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockQuestionRepo) InsertBatch(ctx context.Context, questions []models.Question) error {
	if m.questions == nil {
		m.questions = make(map[string]models.Question)
	}
	for _, q := range questions {
		m.nextID++
		q.ID = string(rune('a' + m.nextID))
		m.questions[q.ID] = q
	}
	return nil
}

func (m *mockQuestionRepo) SetFollowup(ctx context.Context, id string, followup *models.QuestionPayload) error {
	if m.followups == nil {
		m.followups = make(map[string]*models.QuestionPayload)
	}
	m.followups[id] = followup
	if q, ok := m.questions[id]; ok {
		q.Followup = followup
		m.questions[id] = q
	}
	return nil
}

type mockAssignmentReader struct {
	assignments map[string]models.Assignment
}

func (m *mockAssignmentReader) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

type mockGenerator struct {
	generateCalls int
	followupCalls int
	set           *ai.GeneratedSet
	followup      *models.QuestionPayload
	err           error
}

func (m *mockGenerator) GenerateQuestions(ctx context.Context, objectives []string, count int, language string) (*ai.GeneratedSet, error) {
	m.generateCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.set, nil
}

func (m *mockGenerator) GenerateFollowup(ctx context.Context, parent *models.QuestionPayload, code string) (*models.QuestionPayload, error) {
	m.followupCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.followup, nil
}

func newQuestionFixture() (*mockQuestionRepo, *mockAssignmentReader, *mockGenerator) {
	repo := &mockQuestionRepo{}
	assignments := &mockAssignmentReader{assignments: map[string]models.Assignment{
		"a1": {ID: "a1", Name: "Loops", QuestionCount: 2, Language: "python", Objectives: models.StringList{"loops", "lists"}},
	}}
	generator := &mockGenerator{set: &ai.GeneratedSet{
		Objective: "loops",
		Language:  "python",
		Questions: []models.QuestionPayload{
			{Number: 1, Title: "Sum of list"},
			{Number: 2, Title: "Reverse a list"},
		},
	}}
	return repo, assignments, generator
}

func TestQuestionServiceGeneratesOnFirstAccess(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	questions, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, 1, generator.generateCalls)
	for _, q := range questions {
		assert.Equal(t, 1, q.ParentAttempts)
		assert.Equal(t, 1, q.FollowupAttempts)
		assert.False(t, q.Solved)
	}
}

func TestQuestionServiceReturnsStoredSetWithoutRegenerating(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.NoError(t, err)

	questions, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	assert.Equal(t, 1, generator.generateCalls)
}

func TestQuestionServiceUnknownAssignment(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestQuestionServiceGenerationFailureIsRetriable(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	generator.err = ai.ErrMalformedResponse
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.StatusRetryGeneration, appErrors.FromError(err).Status)
}

func TestQuestionServiceFollowupGeneratedOnce(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	generator.followup = &models.QuestionPayload{Number: 1, Title: "Sum with a twist"}
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.NoError(t, err)

	var questionID string
	for id := range repo.questions {
		questionID = id
		break
	}

	first, err := svc.FollowupQuestion(context.Background(), "s1", FollowupQuestionRequest{QuestionID: questionID, Code: "print(1)"})
	require.NoError(t, err)
	assert.Equal(t, "Sum with a twist", first.Title)
	assert.Equal(t, 1, generator.followupCalls)

	second, err := svc.FollowupQuestion(context.Background(), "s1", FollowupQuestionRequest{QuestionID: questionID, Code: "print(2)"})
	require.NoError(t, err)
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, 1, generator.followupCalls)
}

func TestQuestionServiceFollowupUnknownQuestion(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.FollowupQuestion(context.Background(), "s1", FollowupQuestionRequest{QuestionID: "missing", Code: "print(1)"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestQuestionServiceFollowupOtherStudent(t *testing.T) {
	repo, assignments, generator := newQuestionFixture()
	svc := NewQuestionService(repo, assignments, generator, validator.New(), zap.NewNop())

	_, err := svc.ParentQuestions(context.Background(), "s1", ParentQuestionRequest{AssignmentID: "a1"})
	require.NoError(t, err)

	var questionID string
	for id := range repo.questions {
		questionID = id
		break
	}

	_, err = svc.FollowupQuestion(context.Background(), "s2", FollowupQuestionRequest{QuestionID: questionID, Code: "print(1)"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Status, appErrors.FromError(err).Status)
}
