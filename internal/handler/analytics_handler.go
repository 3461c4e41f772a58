package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// AnalyticsHandler wires HTTP endpoints to the analytics service.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// ClassAnalytics godoc
// @Summary Aggregate class progress for an assignment
// @Tags Analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ClassAnalysisRequest true "Assignment reference"
// @Success 200 {object} models.ClassAnalytics
// @Failure 400 {object} map[string]string
// @Router /class-analytics [post]
func (h *AnalyticsHandler) ClassAnalytics(c *gin.Context) {
	var req service.ClassAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid analytics payload"))
		return
	}

	result, err := h.service.ClassAnalysis(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// StudentAnalytics godoc
// @Summary Per-question breakdown for one student
// @Tags Analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.StudentAnalysisRequest true "Student and assignment reference"
// @Success 200 {object} models.StudentAnalytics
// @Failure 400 {object} map[string]string
// @Router /student-analytics [post]
func (h *AnalyticsHandler) StudentAnalytics(c *gin.Context) {
	var req service.StudentAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid analytics payload"))
		return
	}

	result, err := h.service.StudentAnalysis(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// StudentNames godoc
// @Summary List every student display name
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {array} string
// @Router /student-names [get]
func (h *AnalyticsHandler) StudentNames(c *gin.Context) {
	names, err := h.service.StudentNames(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, names)
}

// ExportClassReport godoc
// @Summary Download the class progress report
// @Description Renders the per-student progress table as CSV or PDF
// @Tags Analytics
// @Produce text/csv
// @Produce application/pdf
// @Security BearerAuth
// @Param assignmentID path string true "Assignment ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} map[string]string
// @Router /class-analytics/{assignmentID}/export [get]
func (h *AnalyticsHandler) ExportClassReport(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))

	report, err := h.service.ExportClassReport(c.Request.Context(), c.Param("assignmentID"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
