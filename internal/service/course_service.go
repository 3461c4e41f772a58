package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	"github.com/codelab-edu/codelab-api/internal/repository"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id string) (*models.Course, error)
	List(ctx context.Context) ([]models.Course, error)
	AddMember(ctx context.Context, studentID, courseID string) error
}

// CreateCourseRequest is the course creation payload.
type CreateCourseRequest struct {
	Title string `json:"title" validate:"required"`
}

// JoinCourseRequest is the enrollment payload.
type JoinCourseRequest struct {
	CourseID string `json:"course_id" validate:"required"`
}

// JoinCourseResult confirms an enrollment.
type JoinCourseResult struct {
	Message     string `json:"message"`
	CourseTitle string `json:"course_title"`
}

// CourseService orchestrates course creation and enrollment.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs CourseService.
func NewCourseService(repo courseRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new course owned by the teacher.
func (s *CourseService) Create(ctx context.Context, teacherID string, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "course name is required")
	}
	course := &models.Course{Name: req.Title, TeacherID: teacherID}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}
	s.logger.Info("course created", zap.String("course_id", course.ID), zap.String("teacher_id", teacherID))
	return course, nil
}

// Join enrolls the student into the course. Duplicate joins surface the
// storage engine's conflict; there is no pre-insert existence check.
func (s *CourseService) Join(ctx context.Context, studentID string, req JoinCourseRequest) (*JoinCourseResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "course id is required")
	}
	course, err := s.repo.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if err := s.repo.AddMember(ctx, studentID, course.ID); err != nil {
		if errors.Is(err, repository.ErrDuplicateMember) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "already enrolled in this course")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to join course")
	}
	return &JoinCourseResult{Message: "enrolled successfully", CourseTitle: course.Name}, nil
}

// List returns every course as id/name pairs for pickers.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, nil
}
