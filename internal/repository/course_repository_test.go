package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codelab-edu/codelab-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCourseRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO courses").
		WithArgs(sqlmock.AnyArg(), "Intro to Go", "t1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	course := &models.Course{Name: "Intro to Go", TeacherID: "t1"}
	require.NoError(t, repo.Create(context.Background(), course))
	assert.Len(t, course.ID, models.IDLength)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "teacher_id"}).
		AddRow("c1", "Intro to Go", "t1")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, teacher_id FROM courses WHERE id = $1")).
		WithArgs("c1").
		WillReturnRows(rows)

	course, err := repo.FindByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", course.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "teacher_id"}).
		AddRow("c1", "Intro to Go", "t1").
		AddRow("c2", "Data Structures", "t2")
	mock.ExpectQuery("SELECT c.id, c.name, c.teacher_id FROM courses c").
		WithArgs("s1").
		WillReturnRows(rows)

	courses, err := repo.ListByStudent(context.Background(), "s1")
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryAddMember(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO course_members (student_id, course_id) VALUES ($1, $2)")).
		WithArgs("s1", "c1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.AddMember(context.Background(), "s1", "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryAddMemberDuplicate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec("INSERT INTO course_members").
		WithArgs("s1", "c1").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.AddMember(context.Background(), "s1", "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateMember))
	assert.NoError(t, mock.ExpectationsWereMet())
}
