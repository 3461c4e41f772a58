package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type mockProgressRepo struct {
	created []models.AssignmentProgress
	logged  []string
}

func (m *mockProgressRepo) Create(ctx context.Context, progress *models.AssignmentProgress) error {
	m.created = append(m.created, *progress)
	return nil
}

func (m *mockProgressRepo) LogError(ctx context.Context, studentID, message string) error {
	m.logged = append(m.logged, message)
	return nil
}

func TestProgressServiceSubmit(t *testing.T) {
	repo := &mockProgressRepo{}
	svc := NewProgressService(repo, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), "s1", SubmitProgressRequest{
		AssignmentID:    "a1",
		TotalQuestions:  5,
		SolvedQuestions: 4,
		Score:           80,
		TimeSpent:       300,
		Errors:          []string{"IndexError", "", "TypeError"},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "s1", repo.created[0].StudentID)
	assert.Equal(t, 4, repo.created[0].SolvedQuestions)
	assert.Equal(t, []string{"IndexError", "TypeError"}, repo.logged)
}

func TestProgressServiceSubmitRequiresAssignment(t *testing.T) {
	svc := NewProgressService(&mockProgressRepo{}, validator.New(), zap.NewNop())

	err := svc.Submit(context.Background(), "s1", SubmitProgressRequest{TotalQuestions: 5})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}
