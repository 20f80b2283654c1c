// README: Bearer-token auth middleware; binds caller identity to the request.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleetflow/internal/access"
	"fleetflow/internal/auth"
)

const (
	ctxKeyUID  = "caller_uid"
	ctxKeyRole = "caller_role"
)

// TokenVerifier abstracts auth.Manager so handlers can be tested with stubs.
type TokenVerifier interface {
	Verify(raw string) (*auth.Claims, error)
}

// Auth rejects requests without a valid Bearer token and stores the
// caller's id and role on the gin context.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		claims, err := verifier.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(ctxKeyUID, claims.UserID)
		c.Set(ctxKeyRole, claims.Role)
		c.Next()
	}
}

// CallerUID returns the authenticated user id, or "" if unauthenticated.
func CallerUID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUID); ok {
		if uid, ok := v.(string); ok {
			return uid
		}
	}
	return ""
}

// CallerRole returns the authenticated role, or "" if unauthenticated.
func CallerRole(c *gin.Context) access.Role {
	if v, ok := c.Get(ctxKeyRole); ok {
		if role, ok := v.(string); ok {
			return access.Role(role)
		}
	}
	return ""
}
