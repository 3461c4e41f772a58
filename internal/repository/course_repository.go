package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/codelab-edu/codelab-api/internal/models"
)

// ErrDuplicateMember signals that the (student, course) pair already
// exists. The uniqueness is enforced by the storage engine, not by a
// check-then-create sequence.
var ErrDuplicateMember = errors.New("student already enrolled in course")

const uniqueViolation = "23505"

// CourseRepository handles persistence of courses and memberships.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create persists a new course.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = models.NewID()
	}
	const query = `INSERT INTO courses (id, name, teacher_id) VALUES (:id, :name, :teacher_id)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// FindByID returns a course by its ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	const query = `SELECT id, name, teacher_id FROM courses WHERE id = $1`
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// List returns every course.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, name, teacher_id FROM courses ORDER BY name`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListByTeacher returns courses owned by the teacher.
func (r *CourseRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error) {
	const query = `SELECT id, name, teacher_id FROM courses WHERE teacher_id = $1 ORDER BY name`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher courses: %w", err)
	}
	return courses, nil
}

// ListByStudent returns courses the student is enrolled in.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Course, error) {
	const query = `SELECT c.id, c.name, c.teacher_id FROM courses c
        JOIN course_members m ON m.course_id = c.id
        WHERE m.student_id = $1 ORDER BY c.name`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, studentID); err != nil {
		return nil, fmt.Errorf("list student courses: %w", err)
	}
	return courses, nil
}

// AddMember enrolls a student into a course. Returns ErrDuplicateMember
// when the pair already exists.
func (r *CourseRepository) AddMember(ctx context.Context, studentID, courseID string) error {
	const query = `INSERT INTO course_members (student_id, course_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, studentID, courseID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return ErrDuplicateMember
		}
		return fmt.Errorf("add course member: %w", err)
	}
	return nil
}
