package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route by a declarative allow-list of roles. It must
// run after JWTAuthMiddleware, which attaches the role claim to the context.
func RequireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(CtxRole)
		role, ok := roleVal.(string)
		if !exists || !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing role claim"})
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
