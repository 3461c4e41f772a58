package models

// ClassAnalytics aggregates every progress row for one assignment.
// QuestionDistribution maps "number of questions solved" to how many
// students landed on that count. Distribution slices carry the raw
// per-student values in row order.
type ClassAnalytics struct {
	AvgTime              float64     `json:"avg_time"`
	QuestionDistribution map[int]int `json:"question_distribution"`
	TimeDistribution     []int       `json:"time_distribution"`
	AvgScore             float64     `json:"avg_score"`
	ScoreDistribution    []float64   `json:"score_distribution"`
}

// StudentAnalytics breaks one student's work down per question. Maps are
// keyed by question id; ErrorCounts is keyed by distinct error message
// across all assignments. Empty maps, never nil, when nothing matches.
type StudentAnalytics struct {
	ParentTime   map[string]int `json:"question_parent_time"`
	FollowupTime map[string]int `json:"question_followup_time"`
	ParentAtt    map[string]int `json:"question_parent_att"`
	FollowupAtt  map[string]int `json:"question_followup_att"`
	ErrorCounts  map[string]int `json:"get_error"`
}

// ProgressReportRow is one line of the class analytics export.
type ProgressReportRow struct {
	StudentID       string  `db:"student_id"`
	StudentName     string  `db:"student_name"`
	TotalQuestions  int     `db:"total_questions"`
	SolvedQuestions int     `db:"solved_questions"`
	Score           float64 `db:"score"`
	TimeSpent       int     `db:"time_spent"`
}
