package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type mockUserRepo struct {
	teachers        map[string]models.Teacher
	students        map[string]models.Student
	createdTeachers int
	createdStudents int
}

func (m *mockUserRepo) FindTeacherByEmail(ctx context.Context, email string) (*models.Teacher, error) {
	if t, ok := m.teachers[email]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) CreateTeacher(ctx context.Context, teacher *models.Teacher) error {
	if m.teachers == nil {
		m.teachers = make(map[string]models.Teacher)
	}
	if teacher.ID == "" {
		teacher.ID = "t-new"
	}
	m.teachers[teacher.Email] = *teacher
	m.createdTeachers++
	return nil
}

func (m *mockUserRepo) FindStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	if s, ok := m.students[email]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	if m.students == nil {
		m.students = make(map[string]models.Student)
	}
	if student.ID == "" {
		student.ID = "s-new"
	}
	m.students[student.Email] = *student
	m.createdStudents++
	return nil
}

type mockGoogleVerifier struct {
	claims *GoogleClaims
	err    error
}

func (m *mockGoogleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.claims, nil
}

func newAuthFixture(repo *mockUserRepo, verifier *mockGoogleVerifier) *AuthService {
	return NewAuthService(repo, verifier, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: 24 * time.Hour,
		Issuer:     "codelab-api",
	})
}

func TestAuthServiceGoogleLoginCreatesStudent(t *testing.T) {
	repo := &mockUserRepo{}
	verifier := &mockGoogleVerifier{claims: &GoogleClaims{Email: "ada@example.com", Name: "Ada"}}
	svc := newAuthFixture(repo, verifier)

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token", UserType: models.UserTypeStudent})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, models.UserTypeStudent, res.User.UserType)
	assert.Equal(t, 1, repo.createdStudents)
}

func TestAuthServiceGoogleLoginExistingTeacher(t *testing.T) {
	repo := &mockUserRepo{teachers: map[string]models.Teacher{
		"grace@example.com": {ID: "t1", Name: "Grace", Email: "grace@example.com"},
	}}
	verifier := &mockGoogleVerifier{claims: &GoogleClaims{Email: "grace@example.com", Name: "Grace"}}
	svc := newAuthFixture(repo, verifier)

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token", UserType: models.UserTypeTeacher})
	require.NoError(t, err)
	assert.Equal(t, "t1", res.User.ID)
	assert.Zero(t, repo.createdTeachers)
}

func TestAuthServiceGoogleLoginInvalidUserType(t *testing.T) {
	svc := newAuthFixture(&mockUserRepo{}, &mockGoogleVerifier{claims: &GoogleClaims{Email: "x@example.com"}})

	_, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token", UserType: models.UserType("admin")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestAuthServiceGoogleLoginRejectedToken(t *testing.T) {
	verifier := &mockGoogleVerifier{err: appErrors.Clone(appErrors.ErrUnauthorized, "invalid Google ID token")}
	svc := newAuthFixture(&mockUserRepo{}, verifier)

	_, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "bad", UserType: models.UserTypeStudent})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Status, appErrors.FromError(err).Status)
}

func TestAuthServiceTokenRoundTrip(t *testing.T) {
	repo := &mockUserRepo{}
	verifier := &mockGoogleVerifier{claims: &GoogleClaims{Email: "ada@example.com", Name: "Ada"}}
	svc := newAuthFixture(repo, verifier)

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token", UserType: models.UserTypeStudent})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada", claims.Name)
	assert.Equal(t, models.UserTypeStudent, claims.UserType)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	repo := &mockUserRepo{}
	verifier := &mockGoogleVerifier{claims: &GoogleClaims{Email: "ada@example.com", Name: "Ada"}}
	svc := NewAuthService(repo, verifier, validator.New(), zap.NewNop(), AuthConfig{
		Secret:     "test-secret",
		Expiration: -time.Hour,
		Issuer:     "codelab-api",
	})

	res, err := svc.GoogleLogin(context.Background(), GoogleLoginRequest{IDToken: "token", UserType: models.UserTypeStudent})
	require.NoError(t, err)

	_, err = svc.ValidateToken(res.Token)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrUnauthorized.Status, appErr.Status)
	assert.Equal(t, "token has expired", appErr.Message)
}

func TestAuthServiceValidateTokenGarbage(t *testing.T) {
	svc := newAuthFixture(&mockUserRepo{}, &mockGoogleVerifier{})

	_, err := svc.ValidateToken("not-a-token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Status, appErrors.FromError(err).Status)
}
