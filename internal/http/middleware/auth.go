// README: Firebase ID-token auth middleware; exposes the caller's uid and email to handlers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voyage/internal/infra"
)

const (
	ctxUIDKey   = "auth.uid"
	ctxEmailKey = "auth.email"
)

// Auth verifies the "Authorization: Bearer <token>" header and aborts with
// 401 when it is missing or invalid.
func Auth(verifier infra.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token, err := verifier.VerifyIDToken(c.Request.Context(), raw)
		if err != nil || token == nil || token.UID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUIDKey, token.UID)
		if email := token.Email(); email != "" {
			c.Set(ctxEmailKey, email)
		}
		c.Next()
	}
}

// CallerUID returns the verified uid, or "" outside Auth.
func CallerUID(c *gin.Context) string {
	return c.GetString(ctxUIDKey)
}

// CallerEmail returns the email claim of the verified token, if present.
func CallerEmail(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}
