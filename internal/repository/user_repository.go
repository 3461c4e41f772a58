package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/codelab-edu/codelab-api/internal/models"
)

// UserRepository handles persistence of teacher and student accounts.
// Accounts are insert-and-read only; no update or delete is exposed.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindTeacherByEmail returns the teacher with the given email.
func (r *UserRepository) FindTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	const query = `SELECT id, name, email, profile FROM teachers WHERE email = $1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, email); err != nil {
		return nil, err
	}
	return &teacher, nil
}

// CreateTeacher persists a new teacher account.
func (r *UserRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = models.NewID()
	}
	const query = `INSERT INTO teachers (id, name, email, profile) VALUES (:id, :name, :email, :profile)`
	if _, err := r.db.NamedExecContext(ctx, query, teacher); err != nil {
		return fmt.Errorf("create teacher: %w", err)
	}
	return nil
}

// FindStudentByEmail returns the student with the given email.
func (r *UserRepository) FindStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	const query = `SELECT id, name, email, profile FROM students WHERE email = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, email); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindStudentByName returns the first student matching the display name.
// Display names are not unique; first match wins, as the analytics UI has
// always behaved.
func (r *UserRepository) FindStudentByName(ctx context.Context, name string) (*models.Student, error) {
	const query = `SELECT id, name, email, profile FROM students WHERE name = $1 ORDER BY id LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, name); err != nil {
		return nil, err
	}
	return &student, nil
}

// CreateStudent persists a new student account.
func (r *UserRepository) CreateStudent(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = models.NewID()
	}
	const query = `INSERT INTO students (id, name, email, profile) VALUES (:id, :name, :email, :profile)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// ListStudentNames returns every student display name.
func (r *UserRepository) ListStudentNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM students ORDER BY name`
	var names []string
	if err := r.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("list student names: %w", err)
	}
	return names, nil
}
