package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsRepositoryProgressByAssignment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "solved_questions", "score", "time_spent"}).
		AddRow("s1", 3, 80.0, 120).
		AddRow("s2", 2, 60.0, 90)
	mock.ExpectQuery("SELECT student_id, solved_questions, score, time_spent FROM assignment_progress").
		WithArgs("a1").
		WillReturnRows(rows)

	result, err := repo.ProgressByAssignment(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "s1", result[0].StudentID)
	assert.Equal(t, 80.0, result[0].Score)
	assert.Equal(t, 90, result[1].TimeSpent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryQuestionStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"id", "parent_time", "followup_time", "parent_attempts", "followup_attempts"}).
		AddRow("q1", 45, nil, 2, 1).
		AddRow("q2", nil, nil, 1, 1)
	mock.ExpectQuery("SELECT id, parent_time, followup_time, parent_attempts, followup_attempts").
		WithArgs("a1", "s1").
		WillReturnRows(rows)

	result, err := repo.QuestionStats(context.Background(), "a1", "s1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	require.NotNil(t, result[0].ParentTime)
	assert.Equal(t, 45, *result[0].ParentTime)
	assert.Nil(t, result[0].FollowupTime)
	assert.Equal(t, 2, result[0].ParentAttempts)
	assert.Nil(t, result[1].ParentTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryErrorCountsByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"message", "count"}).
		AddRow("IndexError", 3).
		AddRow("TypeError", 1)
	mock.ExpectQuery("SELECT message, COUNT\\(\\*\\) AS count FROM error_logs").
		WithArgs("s1").
		WillReturnRows(rows)

	result, err := repo.ErrorCountsByStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "IndexError", result[0].Message)
	assert.Equal(t, 3, result[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnalyticsRepositoryProgressReport(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "student_name", "total_questions", "solved_questions", "score", "time_spent"}).
		AddRow("s1", "Ada", 3, 3, 80.0, 120)
	mock.ExpectQuery("SELECT p.student_id, s.name AS student_name").
		WithArgs("a1").
		WillReturnRows(rows)

	result, err := repo.ProgressReport(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Ada", result[0].StudentName)
	assert.Equal(t, 80.0, result[0].Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}
