package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-records/internal/models"
	"github.com/noah-isme/uni-records/internal/service"
	appErrors "github.com/noah-isme/uni-records/pkg/errors"
	"github.com/noah-isme/uni-records/pkg/response"
)

// ContextStudentKey is the gin context key storing session claims.
const ContextStudentKey = "currentStudent"

// JWT protects routes by requiring a valid session token.
func JWT(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextStudentKey, claims)
		c.Next()
	}
}

// CurrentStudent returns the session claims stored by JWT, if any.
func CurrentStudent(c *gin.Context) *models.JWTClaims {
	if v, exists := c.Get(ContextStudentKey); exists {
		if claims, ok := v.(*models.JWTClaims); ok {
			return claims
		}
	}
	return nil
}
