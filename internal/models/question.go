package models

// QuestionPayload is the structured problem statement produced by the
// generator. Stored natively as JSONB; never round-tripped through a
// string literal.
type QuestionPayload struct {
	Number           int    `json:"number"`
	Title            string `json:"title"`
	ProblemStatement string `json:"problem_statement"`
	InputFormat      string `json:"input_format"`
	OutputFormat     string `json:"output_format"`
	SampleInput      string `json:"sample_input"`
	SampleOutput     string `json:"sample_output"`
}

// Question is one generated problem for an (assignment, student) pair.
// State machine: no-parent -> parent-generated -> optional
// followup-generated; no regressions. Solved is terminal.
type Question struct {
	ID               string           `json:"question_id"`
	AssignmentID     string           `json:"assignment_id"`
	StudentID        string           `json:"student_id"`
	Number           int              `json:"number"`
	Parent           *QuestionPayload `json:"parent_question"`
	Followup         *QuestionPayload `json:"followup_question,omitempty"`
	ParentTime       *int             `json:"parent_time"`
	FollowupTime     *int             `json:"followup_time"`
	ParentAttempts   int              `json:"parent_att"`
	FollowupAttempts int              `json:"followup_att"`
	Errors           StringList       `json:"error,omitempty"`
	ParentHints      StringList       `json:"parent_hints,omitempty"`
	FollowupHints    StringList       `json:"follow_hints,omitempty"`
	Solved           bool             `json:"solved"`
}
