package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// ProgressHandler wires HTTP endpoints to the progress service.
type ProgressHandler struct {
	service *service.ProgressService
}

// NewProgressHandler creates a new handler.
func NewProgressHandler(svc *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{service: svc}
}

// Submit godoc
// @Summary Record an attempt session summary
// @Tags Progress
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.SubmitProgressRequest true "Session summary"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /submit-progress [post]
func (h *ProgressHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid progress payload"))
		return
	}

	if err := h.service.Submit(c.Request.Context(), claims.Subject, req); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "Progress recorded")
}
