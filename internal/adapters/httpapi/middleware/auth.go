package middleware

import (
	"net/http"
	"strings"

	"forum/internal/core/auth"
	"forum/internal/core/token"

	"github.com/gin-gonic/gin"
)

const (
	authKey   = "auth"
	userIDKey = "userID"
)

// AccessTokenParser validates bearer tokens.
type AccessTokenParser interface {
	TryParseAccessToken(raw string) (*token.AccessClaims, bool)
}

// JWTAuthMiddleware rejects the request with 401 unless it carries a valid bearer access token.
func JWTAuthMiddleware(parser AccessTokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractTokenFromHeader(c.GetHeader("Authorization"))
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}

		claims, ok := parser.TryParseAccessToken(raw)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(authKey, auth.Context{
			UserID:   claims.Subject,
			Username: claims.Username,
			Roles:    claims.Roles,
		})
		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

// AuthContext returns the caller set by JWTAuthMiddleware, or the zero (anonymous) context.
func AuthContext(c *gin.Context) auth.Context {
	if v, ok := c.Get(authKey); ok {
		if actor, ok := v.(auth.Context); ok {
			return actor
		}
	}
	return auth.Context{}
}

func extractTokenFromHeader(header string) string {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(raw)
}
