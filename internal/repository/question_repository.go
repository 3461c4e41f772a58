package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codelab-edu/codelab-api/internal/models"
)

// QuestionRepository handles persistence of generated questions. Parent
// and follow-up payloads live in JSONB columns; the (assignment, student,
// number) triple is unique so concurrent first-generation inserts collapse
// instead of duplicating.
type QuestionRepository struct {
	db *sqlx.DB
}

// NewQuestionRepository constructs the repository.
func NewQuestionRepository(db *sqlx.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

type questionRow struct {
	ID               string  `db:"id"`
	AssignmentID     string  `db:"assignment_id"`
	StudentID        string  `db:"student_id"`
	Number           int     `db:"number"`
	Parent           []byte  `db:"parent_question"`
	Followup         []byte  `db:"followup_question"`
	ParentTime       *int    `db:"parent_time"`
	FollowupTime     *int    `db:"followup_time"`
	ParentAttempts   int     `db:"parent_attempts"`
	FollowupAttempts int     `db:"followup_attempts"`
	Errors           []byte  `db:"errors"`
	ParentHints      []byte  `db:"parent_hints"`
	FollowupHints    []byte  `db:"followup_hints"`
	Solved           bool    `db:"solved"`
}

const questionColumns = `id, assignment_id, student_id, number, parent_question, followup_question,
        parent_time, followup_time, parent_attempts, followup_attempts, errors, parent_hints, followup_hints, solved`

func (row questionRow) toModel() (models.Question, error) {
	q := models.Question{
		ID:               row.ID,
		AssignmentID:     row.AssignmentID,
		StudentID:        row.StudentID,
		Number:           row.Number,
		ParentTime:       row.ParentTime,
		FollowupTime:     row.FollowupTime,
		ParentAttempts:   row.ParentAttempts,
		FollowupAttempts: row.FollowupAttempts,
		Solved:           row.Solved,
	}
	if len(row.Parent) > 0 {
		q.Parent = &models.QuestionPayload{}
		if err := json.Unmarshal(row.Parent, q.Parent); err != nil {
			return q, fmt.Errorf("decode parent payload for %s: %w", row.ID, err)
		}
	}
	if len(row.Followup) > 0 {
		q.Followup = &models.QuestionPayload{}
		if err := json.Unmarshal(row.Followup, q.Followup); err != nil {
			return q, fmt.Errorf("decode followup payload for %s: %w", row.ID, err)
		}
	}
	if err := decodeList(row.Errors, &q.Errors); err != nil {
		return q, fmt.Errorf("decode errors for %s: %w", row.ID, err)
	}
	if err := decodeList(row.ParentHints, &q.ParentHints); err != nil {
		return q, fmt.Errorf("decode parent hints for %s: %w", row.ID, err)
	}
	if err := decodeList(row.FollowupHints, &q.FollowupHints); err != nil {
		return q, fmt.Errorf("decode followup hints for %s: %w", row.ID, err)
	}
	return q, nil
}

func decodeList(raw []byte, dest *models.StringList) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}

// ListByAssignmentAndStudent returns the student's questions for one
// assignment, ordered by question number.
func (r *QuestionRepository) ListByAssignmentAndStudent(ctx context.Context, assignmentID, studentID string) ([]models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE assignment_id = $1 AND student_id = $2 ORDER BY number`, questionColumns)
	var rows []questionRow
	if err := r.db.SelectContext(ctx, &rows, query, assignmentID, studentID); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	questions := make([]models.Question, 0, len(rows))
	for _, row := range rows {
		q, err := row.toModel()
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// FindByID returns a question by its ID.
func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	query := fmt.Sprintf(`SELECT %s FROM questions WHERE id = $1`, questionColumns)
	var row questionRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	q, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// InsertBatch persists one row per generated question inside a single
// transaction. Rows whose (assignment, student, number) already exist are
// skipped via ON CONFLICT DO NOTHING, so a concurrent first-generation
// request cannot duplicate the set. Any failure rolls the whole batch back.
func (r *QuestionRepository) InsertBatch(ctx context.Context, questions []models.Question) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin question batch: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO questions
        (id, assignment_id, student_id, number, parent_question, parent_attempts, followup_attempts, solved)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (assignment_id, student_id, number) DO NOTHING`

	for i := range questions {
		q := &questions[i]
		if q.ID == "" {
			q.ID = models.NewID()
		}
		payload, err := json.Marshal(q.Parent)
		if err != nil {
			return fmt.Errorf("encode parent payload: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query,
			q.ID, q.AssignmentID, q.StudentID, q.Number,
			payload, q.ParentAttempts, q.FollowupAttempts, q.Solved,
		); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit question batch: %w", err)
	}
	return nil
}

// SetFollowup caches the follow-up payload on an existing question row.
// Only rows without a follow-up are touched; once set it is never
// regenerated.
func (r *QuestionRepository) SetFollowup(ctx context.Context, id string, followup *models.QuestionPayload) error {
	payload, err := json.Marshal(followup)
	if err != nil {
		return fmt.Errorf("encode followup payload: %w", err)
	}
	const query = `UPDATE questions SET followup_question = $2 WHERE id = $1 AND followup_question IS NULL`
	if _, err := r.db.ExecContext(ctx, query, id, payload); err != nil {
		return fmt.Errorf("set followup: %w", err)
	}
	return nil
}
