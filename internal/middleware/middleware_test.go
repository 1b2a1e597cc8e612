package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) StartSession(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *mockSessionService) ResolveSession(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSessionService) EndSession(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func init() {
	gin.SetMode(gin.TestMode)
}

// echoUser answers with the user ID seen by the handler, from both contexts.
func echoUser(c *gin.Context) {
	fromGin, okGin := middleware.GetUserIDFromContext(c)
	fromCtx, okCtx := middleware.UserIDFromCtx(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"gin": fromGin, "ctx": fromCtx, "ok": okGin && okCtx})
}

func TestStructuredLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger))
	r.GET("/ping", func(c *gin.Context) {
		assert.Same(t, middleware.GetLoggerFromContext(c), middleware.GetLoggerFromCtx(c.Request.Context()))
		c.String(http.StatusOK, "pong")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "Request completed")
	assert.Contains(t, buf.String(), w.Header().Get("X-Request-ID"))
}

func TestGetLoggerFromCtx_DefaultsWhenMissing(t *testing.T) {
	assert.Equal(t, slog.Default(), middleware.GetLoggerFromCtx(context.Background()))
}

func TestSingleUser(t *testing.T) {
	r := gin.New()
	r.GET("/me", middleware.SingleUser(), echoUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.JSONEq(t, `{"gin":0,"ctx":0,"ok":true}`, w.Body.String())
}

func TestRequireSession(t *testing.T) {
	sessions := new(mockSessionService)
	sessions.On("ResolveSession", mock.Anything, "good").Return(int64(7), nil)
	sessions.On("ResolveSession", mock.Anything, "revoked").Return(int64(0), apperrors.ErrUnauthorized)

	r := gin.New()
	r.GET("/api", middleware.RequireSession(sessions, "sid", middleware.AbortUnauthorizedJSON), echoUser)
	r.GET("/page", middleware.RequireSession(sessions, "sid", middleware.RedirectTo("/login")), echoUser)

	tests := []struct {
		name       string
		path       string
		header     string
		cookie     string
		wantStatus int
		wantBody   string
	}{
		{name: "bearer token", path: "/api", header: "Bearer good", wantStatus: http.StatusOK, wantBody: `{"gin":7,"ctx":7,"ok":true}`},
		{name: "cookie token", path: "/api", cookie: "good", wantStatus: http.StatusOK, wantBody: `{"gin":7,"ctx":7,"ok":true}`},
		{name: "missing token", path: "/api", wantStatus: http.StatusUnauthorized, wantBody: `{"error":"Authentication required"}`},
		{name: "malformed header", path: "/api", header: "Token good", cookie: "good", wantStatus: http.StatusUnauthorized},
		{name: "revoked session", path: "/api", cookie: "revoked", wantStatus: http.StatusUnauthorized},
		{name: "page redirect", path: "/page", wantStatus: http.StatusFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "sid", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus == http.StatusFound {
				assert.Equal(t, "/login", w.Header().Get("Location"))
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	rate, err := limiter.NewRateFromFormatted("2-M")
	require.NoError(t, err)

	r := gin.New()
	r.POST("/login", middleware.RateLimit(limiter.New(memory.NewStore(), rate), nil), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.POST("/custom", middleware.RateLimit(limiter.New(memory.NewStore(), rate), func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	}), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/custom", nil))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/custom", nil))
	assert.Equal(t, http.StatusFound, w.Code)
}
