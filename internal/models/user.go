package models

// UserType distinguishes the two account kinds issued by Google login.
type UserType string

const (
	UserTypeTeacher UserType = "teacher"
	UserTypeStudent UserType = "student"
)

// Valid reports whether the user type is one of the known kinds.
func (t UserType) Valid() bool {
	return t == UserTypeTeacher || t == UserTypeStudent
}

// Teacher owns courses and their assignments.
type Teacher struct {
	ID      string  `db:"id" json:"userid"`
	Name    string  `db:"name" json:"name"`
	Email   string  `db:"email" json:"email"`
	Profile *string `db:"profile" json:"profile,omitempty"`
}

// Student enrolls in courses and attempts generated questions.
type Student struct {
	ID      string  `db:"id" json:"userid"`
	Name    string  `db:"name" json:"name"`
	Email   string  `db:"email" json:"email"`
	Profile *string `db:"profile" json:"profile,omitempty"`
}

// UserInfo is the login response body's user block.
type UserInfo struct {
	ID       string   `json:"userid"`
	Email    string   `json:"email"`
	Name     string   `json:"name"`
	Picture  *string  `json:"picture,omitempty"`
	UserType UserType `json:"user_type"`
}
