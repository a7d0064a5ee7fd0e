package middleware

import (
	"net/http"
	"strings"

	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth gate. Handlers read identity exclusively from
// these; client-supplied ids are never trusted for authorization decisions.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
)

// JWTAuthMiddleware verifies the bearer credential and attaches the decoded
// claims to the request context. The token is self-contained; no server-side
// session state is consulted.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}
