package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/service"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// GoogleLogin godoc
// @Summary Exchange a Google ID token for an access token
// @Description Verify the Google ID token, create the account on first login and issue a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body service.GoogleLoginRequest true "Login payload"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req service.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.GoogleLogin(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}
