package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// CourseHandler wires HTTP endpoints to the course service.
type CourseHandler struct {
	service *service.CourseService
}

// NewCourseHandler creates a new handler.
func NewCourseHandler(svc *service.CourseService) *CourseHandler {
	return &CourseHandler{service: svc}
}

// Create godoc
// @Summary Create a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /courses/create [post]
func (h *CourseHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.service.Create(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Course created successfully",
		"id":      course.ID,
		"title":   course.Name,
	})
}

// Join godoc
// @Summary Enroll the current student in a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.JoinCourseRequest true "Enrollment payload"
// @Success 200 {object} service.JoinCourseResult
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /courses/join [post]
func (h *CourseHandler) Join(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.JoinCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	result, err := h.service.Join(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// List godoc
// @Summary List all courses
// @Tags Courses
// @Produce json
// @Security BearerAuth
// @Success 200 {array} map[string]string
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]gin.H, 0, len(courses))
	for _, course := range courses {
		list = append(list, gin.H{"id": course.ID, "name": course.Name})
	}

	response.JSON(c, http.StatusOK, list)
}
