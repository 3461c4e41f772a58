package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// QuestionHandler wires HTTP endpoints to the question lifecycle service.
type QuestionHandler struct {
	service *service.QuestionService
}

// NewQuestionHandler creates a new handler.
func NewQuestionHandler(svc *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: svc}
}

// ParentQuestions godoc
// @Summary Fetch or generate the student's question set
// @Description Returns stored questions for the assignment, generating them on first access
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.ParentQuestionRequest true "Assignment reference"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /get-parent-question [post]
func (h *QuestionHandler) ParentQuestions(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.ParentQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid question request"))
		return
	}

	questions, err := h.service.ParentQuestions(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"questions": questions})
}

// FollowupQuestion godoc
// @Summary Fetch or generate the follow-up for a question
// @Description Returns the cached follow-up or generates one from the submitted code
// @Tags Questions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FollowupQuestionRequest true "Question reference and code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /get-followup-question [post]
func (h *QuestionHandler) FollowupQuestion(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.FollowupQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid follow-up request"))
		return
	}

	followup, err := h.service.FollowupQuestion(c.Request.Context(), claims.Subject, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"followup_question": followup})
}
