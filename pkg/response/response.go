package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
)

// JSON sends a success response with the given payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Message sends a plain message payload, matching the API's historical
// {"message": ...} error and status bodies.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// Error converts the error to the typed form and writes it as JSON.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
}
