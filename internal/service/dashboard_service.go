package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

type dashboardCourseRepository interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Course, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.Course, error)
}

type dashboardAssignmentRepository interface {
	ListByCourse(ctx context.Context, courseID string) ([]models.Assignment, error)
}

// DashboardService assembles the landing payloads for both user types.
type DashboardService struct {
	courses     dashboardCourseRepository
	assignments dashboardAssignmentRepository
	logger      *zap.Logger
}

// NewDashboardService constructs DashboardService.
func NewDashboardService(courses dashboardCourseRepository, assignments dashboardAssignmentRepository, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{courses: courses, assignments: assignments, logger: logger}
}

// ForTeacher lists the teacher's courses with their assignments.
func (s *DashboardService) ForTeacher(ctx context.Context, teacherID, teacherName string) (*models.Dashboard, error) {
	courses, err := s.courses.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	return s.assemble(ctx, teacherName, courses)
}

// ForStudent lists the student's enrolled courses with their assignments.
func (s *DashboardService) ForStudent(ctx context.Context, studentID, studentName string) (*models.Dashboard, error) {
	courses, err := s.courses.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}
	return s.assemble(ctx, studentName, courses)
}

func (s *DashboardService) assemble(ctx context.Context, name string, courses []models.Course) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{
		Name:        name,
		Courses:     make([]models.DashboardCourse, 0, len(courses)),
		Assignments: []models.DashboardAssignment{},
	}

	for _, course := range courses {
		assignments, err := s.assignments.ListByCourse(ctx, course.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
		}
		dashboard.Courses = append(dashboard.Courses, models.DashboardCourse{
			ID:      course.ID,
			Title:   course.Name,
			Lessons: len(assignments),
		})
		for _, assignment := range assignments {
			dashboard.Assignments = append(dashboard.Assignments, models.DashboardAssignment{
				ID:     assignment.ID,
				Title:  assignment.Name,
				Course: course.Name,
			})
		}
	}

	return dashboard, nil
}
