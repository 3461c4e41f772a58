package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// CodeHandler wires HTTP endpoints to the code service.
type CodeHandler struct {
	service *service.CodeService
}

// NewCodeHandler creates a new handler.
func NewCodeHandler(svc *service.CodeService) *CodeHandler {
	return &CodeHandler{service: svc}
}

// Run godoc
// @Summary Execute code and grade the output
// @Tags Code
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.RunCodeRequest true "Execution payload"
// @Success 200 {object} service.RunCodeResult
// @Failure 400 {object} map[string]string
// @Router /run_code [post]
func (h *CodeHandler) Run(c *gin.Context) {
	var req service.RunCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid execution payload"))
		return
	}

	result, err := h.service.RunCode(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// Check godoc
// @Summary Grade code against a question
// @Tags Code
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CheckRequest true "Grading payload"
// @Success 200 {object} ai.Verdict
// @Failure 400 {object} map[string]string
// @Router /check [post]
func (h *CodeHandler) Check(c *gin.Context) {
	var req service.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grading payload"))
		return
	}

	verdict, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, verdict)
}

// GenerateQuestions godoc
// @Summary Generate a question set
// @Tags Code
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.GenerateQuestionsRequest true "Generation payload"
// @Success 200 {object} ai.GeneratedSet
// @Failure 400 {object} map[string]string
// @Router /master-ques [post]
func (h *CodeHandler) GenerateQuestions(c *gin.Context) {
	var req service.GenerateQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	set, err := h.service.GenerateQuestions(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, set)
}

// Followup godoc
// @Summary Generate a follow-up question
// @Tags Code
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.FollowupRequest true "Follow-up payload"
// @Success 200 {object} models.QuestionPayload
// @Failure 400 {object} map[string]string
// @Router /follow-ques [post]
func (h *CodeHandler) Followup(c *gin.Context) {
	var req service.FollowupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid follow-up payload"))
		return
	}

	followup, err := h.service.Followup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, followup)
}

// Hints godoc
// @Summary Generate progressive hints
// @Tags Code
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.HintRequest true "Hint payload"
// @Success 200 {object} ai.HintSet
// @Failure 400 {object} map[string]string
// @Router /hints [post]
func (h *CodeHandler) Hints(c *gin.Context) {
	var req service.HintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid hint payload"))
		return
	}

	hints, err := h.service.Hints(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, hints)
}
