package models

// Course is a class owned by exactly one teacher.
type Course struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	TeacherID string `db:"teacher_id" json:"teacher_id"`
}

// CourseMember links a student to a course. The (student, course) pair is
// unique at the storage level; a second join attempt surfaces as a
// conflict rather than a pre-insert existence check.
type CourseMember struct {
	ID        int64  `db:"id" json:"-"`
	StudentID string `db:"student_id" json:"student_id"`
	CourseID  string `db:"course_id" json:"course_id"`
}
