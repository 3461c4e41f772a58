package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// AssignmentHandler wires HTTP endpoints to the assignment service.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler creates a new handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// Create godoc
// @Summary Create an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} service.AssignmentSummary
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /assignments/create [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}

	summary, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, summary)
}

// ListByCourse godoc
// @Summary List assignments for a course
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param courseID path string true "Course ID"
// @Success 200 {array} map[string]string
// @Router /assignments/{courseID} [get]
func (h *AssignmentHandler) ListByCourse(c *gin.Context) {
	assignments, err := h.service.ListByCourse(c.Request.Context(), c.Param("courseID"))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]gin.H, 0, len(assignments))
	for _, assignment := range assignments {
		list = append(list, gin.H{"id": assignment.ID})
	}

	response.JSON(c, http.StatusOK, list)
}
