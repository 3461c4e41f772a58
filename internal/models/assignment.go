package models

import "time"

// Assignment is a lab sheet attached to a course. Objectives drive the
// question generator; QuestionCount is how many questions each student
// receives.
type Assignment struct {
	ID            string     `db:"id" json:"assignment_id"`
	Name          string     `db:"name" json:"name"`
	QuestionCount int        `db:"question_count" json:"no_ques"`
	Language      string     `db:"language" json:"language"`
	Objectives    StringList `db:"objectives" json:"objective"`
	DueDate       time.Time  `db:"due_date" json:"date"`
	CourseID      string     `db:"course_id" json:"class_id"`
}
