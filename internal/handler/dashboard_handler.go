package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Teacher godoc
// @Summary Teacher dashboard
// @Description Courses taught by the teacher with their assignments
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard
// @Router /teacher-dashboard [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.ForTeacher(c.Request.Context(), claims.Subject, claims.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard)
}

// Student godoc
// @Summary Student dashboard
// @Description Courses the student is enrolled in with their assignments
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Dashboard
// @Router /student-dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dashboard, err := h.service.ForStudent(c.Request.Context(), claims.Subject, claims.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard)
}
