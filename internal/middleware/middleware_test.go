package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"vivaha-be/internal/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterRejectsAfterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	defer rl.Stop()

	router := gin.New()
	router.GET("/ping", rl.LimitMiddleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		router.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "1000", last.Header().Get("Retry-After"))
}

func TestRateLimiterEvictsIdleVisitors(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	defer rl.Stop()

	rl.getVisitor("10.0.0.1")
	rl.evictIdle(time.Now().Add(visitorIdleTimeout + time.Second))

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.visitors)
}

func TestRateLimiterStopEndsCleanup(t *testing.T) {
	defer goleak.VerifyNone(t)

	rl := NewRateLimiter(1, 1)
	rl.Stop()
	rl.Stop()
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	token, err := svc.GenerateToken("user-42", "groom@example.com", false)
	require.NoError(t, err)

	router := gin.New()
	router.GET("/me", AuthMiddleware(svc), func(c *gin.Context) {
		id, _ := UserID(c)
		c.String(http.StatusOK, id)
	})
	router.GET("/admin", AuthMiddleware(svc), RequireAdmin(adminSet{}), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		path   string
		header string
		want   int
		body   string
	}{
		{name: "missing header", path: "/me", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/me", header: "Bearer nope", want: http.StatusUnauthorized},
		{name: "valid token", path: "/me", header: "Bearer " + token, want: http.StatusOK, body: "user-42"},
		{name: "non admin", path: "/admin", header: "Bearer " + token, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

// adminSet maps user IDs to their stored admin flag. A nil value fails.
type adminSet map[string]*bool

func (a adminSet) IsAdmin(_ context.Context, userID string) (bool, error) {
	flag, ok := a[userID]
	if !ok {
		return false, nil
	}
	if flag == nil {
		return false, errors.New("database unavailable")
	}
	return *flag, nil
}

func TestRequireAdminChecksStoredFlag(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	yes, no := true, false
	admins := adminSet{"admin": &yes, "demoted": &no, "broken": nil}

	router := gin.New()
	router.GET("/admin", AuthMiddleware(svc), RequireAdmin(admins), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name    string
		userID  string
		isAdmin bool
		want    int
	}{
		{name: "admin", userID: "admin", isAdmin: true, want: http.StatusOK},
		{name: "admin revoked after token was issued", userID: "demoted", isAdmin: true, want: http.StatusForbidden},
		{name: "deleted user", userID: "gone", isAdmin: true, want: http.StatusForbidden},
		{name: "lookup fails", userID: "broken", isAdmin: true, want: http.StatusInternalServerError},
		{name: "claim missing", userID: "admin", isAdmin: false, want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := svc.GenerateToken(tt.userID, tt.userID+"@example.com", tt.isAdmin)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	router := gin.New()
	router.Use(RequestLogger(logger))
	router.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"path":"/boom"`)
	assert.Contains(t, buf.String(), `"status":500`)
}
