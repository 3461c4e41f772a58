package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/codelab-edu/codelab-api/internal/models"
	appErrors "github.com/codelab-edu/codelab-api/pkg/errors"
	"github.com/codelab-edu/codelab-api/pkg/response"
)

// RequireUserType limits a route to the given account types.
func RequireUserType(allowed ...models.UserType) gin.HandlerFunc {
	allowedTypes := make(map[models.UserType]struct{}, len(allowed))
	for _, t := range allowed {
		allowedTypes[t] = struct{}{}
	}

	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextUserKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims := claimsValue.(*models.JWTClaims)

		if _, ok := allowedTypes[claims.UserType]; !ok {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
