package models

// AssignmentProgress summarises one student's attempt session on an
// assignment. Read by the analytics aggregator, written by the grading
// collaborators.
type AssignmentProgress struct {
	ID              int64      `db:"id" json:"-"`
	AssignmentID    string     `db:"assignment_id" json:"assignment_id"`
	StudentID       string     `db:"student_id" json:"student_id"`
	TotalQuestions  int        `db:"total_questions" json:"total_questions"`
	SolvedQuestions int        `db:"solved_questions" json:"solved_questions"`
	Score           float64    `db:"score" json:"score"`
	TimeSpent       int        `db:"time_spent" json:"time"`
	Errors          StringList `db:"errors" json:"errors,omitempty"`
}

// ErrorLog is a flat per-student error record. There is deliberately no
// foreign key to questions or assignments; the log is global per student.
type ErrorLog struct {
	ID        int64  `db:"id" json:"id"`
	StudentID string `db:"student_id" json:"student_id"`
	Message   string `db:"message" json:"error_message"`
}
