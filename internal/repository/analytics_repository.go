package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codelab-edu/codelab-api/internal/models"
)

// AnalyticsRepository exposes read-only queries for the analytics
// aggregator. It never mutates state.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// ProgressRow is the slice of an AssignmentProgress record the class
// aggregation needs.
type ProgressRow struct {
	StudentID       string  `db:"student_id"`
	SolvedQuestions int     `db:"solved_questions"`
	Score           float64 `db:"score"`
	TimeSpent       int     `db:"time_spent"`
}

// ProgressByAssignment returns every progress row for the assignment.
func (r *AnalyticsRepository) ProgressByAssignment(ctx context.Context, assignmentID string) ([]ProgressRow, error) {
	const query = `SELECT student_id, solved_questions, score, time_spent FROM assignment_progress WHERE assignment_id = $1 ORDER BY id`
	var rows []ProgressRow
	if err := r.db.SelectContext(ctx, &rows, query, assignmentID); err != nil {
		return nil, fmt.Errorf("query assignment progress: %w", err)
	}
	return rows, nil
}

// QuestionStatRow carries per-question counters for one student.
type QuestionStatRow struct {
	QuestionID       string `db:"id"`
	ParentTime       *int   `db:"parent_time"`
	FollowupTime     *int   `db:"followup_time"`
	ParentAttempts   int    `db:"parent_attempts"`
	FollowupAttempts int    `db:"followup_attempts"`
}

// QuestionStats returns time and attempt counters for the student's
// questions in one assignment.
func (r *AnalyticsRepository) QuestionStats(ctx context.Context, assignmentID, studentID string) ([]QuestionStatRow, error) {
	const query = `SELECT id, parent_time, followup_time, parent_attempts, followup_attempts
        FROM questions WHERE assignment_id = $1 AND student_id = $2 ORDER BY number`
	var rows []QuestionStatRow
	if err := r.db.SelectContext(ctx, &rows, query, assignmentID, studentID); err != nil {
		return nil, fmt.Errorf("query question stats: %w", err)
	}
	return rows, nil
}

// ErrorCountRow is one distinct error message with its occurrence count.
type ErrorCountRow struct {
	Message string `db:"message"`
	Count   int    `db:"count"`
}

// ErrorCountsByStudent groups the student's error log by message across
// all assignments.
func (r *AnalyticsRepository) ErrorCountsByStudent(ctx context.Context, studentID string) ([]ErrorCountRow, error) {
	const query = `SELECT message, COUNT(*) AS count FROM error_logs WHERE student_id = $1 GROUP BY message`
	var rows []ErrorCountRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("query error counts: %w", err)
	}
	return rows, nil
}

// ProgressReport joins progress rows with student names for export.
func (r *AnalyticsRepository) ProgressReport(ctx context.Context, assignmentID string) ([]models.ProgressReportRow, error) {
	const query = `SELECT p.student_id, s.name AS student_name, p.total_questions, p.solved_questions, p.score, p.time_spent
        FROM assignment_progress p
        JOIN students s ON s.id = p.student_id
        WHERE p.assignment_id = $1 ORDER BY s.name`
	var rows []models.ProgressReportRow
	if err := r.db.SelectContext(ctx, &rows, query, assignmentID); err != nil {
		return nil, fmt.Errorf("query progress report: %w", err)
	}
	return rows, nil
}
