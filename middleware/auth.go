package middleware

import (
	"net/http"
	"strings"

	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

// RequireAuth validates the bearer token and stores the caller's identity
// on the context for downstream handlers.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("username", claims.Subject)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route on the role carried by the token. Must run
// after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			utils.JSONError(c, http.StatusForbidden, "forbidden", "insufficient permissions")
			c.Abort()
			return
		}
		c.Next()
	}
}
