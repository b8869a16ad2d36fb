package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forum/internal/core/auth"
	"forum/internal/core/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTokens(t *testing.T) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Options{
		Secret:   []byte("middleware-test-secret"),
		Issuer:   "forum",
		Audience: "forum-clients",
	})
	require.NoError(t, err)
	return svc
}

func newRouter(tokens *token.Service, seen *auth.Context) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", JWTAuthMiddleware(tokens), func(c *gin.Context) {
		*seen = AuthContext(c)
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	valid, err := tokens.CreateAccessToken("alice", "user-1", []string{auth.RoleForumUser})
	require.NoError(t, err)
	refresh, err := tokens.CreateRefreshToken("session-1", "user-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"Valid token", "Bearer " + valid, http.StatusOK},
		{"Lower case scheme", "bearer " + valid, http.StatusOK},
		{"Missing header", "", http.StatusUnauthorized},
		{"Wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"Garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"Refresh token as access token", "Bearer " + refresh, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen auth.Context
			r := newRouter(tokens, &seen)

			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "user-1", seen.UserID)
				assert.Equal(t, "alice", seen.Username)
				assert.True(t, seen.HasRole(auth.RoleForumUser))
			}
		})
	}
}

func TestAuthContextAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.False(t, AuthContext(c).Authenticated())
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	for _, path := range []string{"/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, int64(http.StatusNotFound), entries[1].ContextMap()["status"])
}
