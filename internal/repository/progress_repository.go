package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codelab-edu/codelab-api/internal/models"
)

// ProgressRepository persists per-session assignment summaries and the
// flat per-student error log.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs the repository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Create inserts a progress summary row.
func (r *ProgressRepository) Create(ctx context.Context, progress *models.AssignmentProgress) error {
	const query = `INSERT INTO assignment_progress (assignment_id, student_id, total_questions, solved_questions, score, time_spent, errors)
        VALUES (:assignment_id, :student_id, :total_questions, :solved_questions, :score, :time_spent, :errors)`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("create assignment progress: %w", err)
	}
	return nil
}

// LogError appends a message to the student's error log.
func (r *ProgressRepository) LogError(ctx context.Context, studentID, message string) error {
	const query = `INSERT INTO error_logs (student_id, message) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, studentID, message); err != nil {
		return fmt.Errorf("log student error: %w", err)
	}
	return nil
}
