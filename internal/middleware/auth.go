package middleware

import (
	"net/http"
	"strings"

	"choosecare-bff/internal/service"
	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the access token from the Authorization header.
// The token saved for a device at login is never used in its place: the
// device id is a client-chosen label, not a credential.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract token from Authorization header
		if c.GetHeader("Authorization") == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authorization header required")
			c.Abort()
			return
		}
		token, ok := BearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			c.Abort()
			return
		}

		claims, err := auth.Claims(token)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Inject claims into context
		c.Set("token", token)
		c.Set("userID", string(claims.UserID))
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalAuth forwards a bearer token when one is sent and never rejects.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := BearerToken(c); ok {
			c.Set("token", token)
		}
		c.Next()
	}
}

// RequireRole rejects callers whose role claim is not in roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		utils.ErrorResponse(c, http.StatusForbidden, "Access denied for role "+role.(string))
		c.Abort()
	}
}

// BearerToken returns the token of an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
