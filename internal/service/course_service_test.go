package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/repository"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type mockCourseRepo struct {
	courses map[string]models.Course
	members map[string]bool
	created *models.Course
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.courses == nil {
		m.courses = make(map[string]models.Course)
	}
	if course.ID == "" {
		course.ID = "new-course"
	}
	m.courses[course.ID] = *course
	m.created = course
	return nil
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if course, ok := m.courses[id]; ok {
		return &course, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	var list []models.Course
	for _, course := range m.courses {
		list = append(list, course)
	}
	return list, nil
}

func (m *mockCourseRepo) AddMember(ctx context.Context, studentID, courseID string) error {
	if m.members == nil {
		m.members = make(map[string]bool)
	}
	key := studentID + ":" + courseID
	if m.members[key] {
		return repository.ErrDuplicateMember
	}
	m.members[key] = true
	return nil
}

func TestCourseServiceCreate(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	course, err := svc.Create(context.Background(), "t1", CreateCourseRequest{Title: "Intro to Go"})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", course.Name)
	assert.Equal(t, "t1", course.TeacherID)
	assert.NotNil(t, repo.created)
}

func TestCourseServiceCreateRequiresTitle(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), "t1", CreateCourseRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestCourseServiceJoin(t *testing.T) {
	repo := &mockCourseRepo{courses: map[string]models.Course{"c1": {ID: "c1", Name: "Intro to Go", TeacherID: "t1"}}}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	result, err := svc.Join(context.Background(), "s1", JoinCourseRequest{CourseID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "Intro to Go", result.CourseTitle)
	assert.True(t, repo.members["s1:c1"])
}

func TestCourseServiceJoinUnknownCourse(t *testing.T) {
	svc := NewCourseService(&mockCourseRepo{}, validator.New(), zap.NewNop())

	_, err := svc.Join(context.Background(), "s1", JoinCourseRequest{CourseID: "missing"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestCourseServiceJoinDuplicate(t *testing.T) {
	repo := &mockCourseRepo{courses: map[string]models.Course{"c1": {ID: "c1", Name: "Intro to Go"}}}
	svc := NewCourseService(repo, validator.New(), zap.NewNop())

	_, err := svc.Join(context.Background(), "s1", JoinCourseRequest{CourseID: "c1"})
	require.NoError(t, err)

	_, err = svc.Join(context.Background(), "s1", JoinCourseRequest{CourseID: "c1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Status, appErr.Status)
	assert.False(t, errors.Is(err, sql.ErrNoRows))
}
