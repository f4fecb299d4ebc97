package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole allows the request through only when the authenticated
// account holds one of the given roles. Must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
			return
		}
		if _, ok := allowed[claims.Role]; !ok {
			abortForbidden(c, "FORBIDDEN", "Insufficient role for this operation", http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// RequireScope allows the request through only when the token carries the
// given scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			abortForbidden(c, "UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
			return
		}
		if !claims.HasScope(scope) {
			abortForbidden(c, "FORBIDDEN", "Token does not grant this operation", http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func abortForbidden(c *gin.Context, code, message string, status int) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}
