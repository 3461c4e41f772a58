package models

// DashboardCourse is a course tile with its assignment ("lesson") count.
type DashboardCourse struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Lessons int    `json:"lessons"`
}

// DashboardAssignment is an assignment row labelled with its course name.
type DashboardAssignment struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Course string `json:"course"`
}

// Dashboard is the teacher/student landing payload.
type Dashboard struct {
	Name        string                `json:"name"`
	Courses     []DashboardCourse     `json:"courses"`
	Assignments []DashboardAssignment `json:"assignments"`
}
