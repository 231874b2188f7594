package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authHandler "mockly-server/internal/auth/handler"
	authProcessor "mockly-server/internal/auth/processor"
	callsHandler "mockly-server/internal/calls/handler"
	"mockly-server/internal/clients/redis"
	"mockly-server/internal/config"
	feedbackHandler "mockly-server/internal/feedback/handler"
	interviewsHandler "mockly-server/internal/interviews/handler"
	interviewsProcessor "mockly-server/internal/interviews/processor"
	"mockly-server/internal/observability"
	"mockly-server/internal/ratelimit"
	"mockly-server/internal/voiceagent/scripts"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "hook-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := observability.NewNopLogger()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	limiter := ratelimit.NewService(redis.Wrap(rdb, logger), "generate", 1, time.Hour, logger)

	authProc := authProcessor.New(nil, config.AuthConfig{JWTSecret: "test-secret"}, logger)
	interviewProc := interviewsProcessor.New(nil, nil, nil, logger)

	r := gin.New()
	a := New(
		r.Group("/"),
		authHandler.New(authProc, false, logger),
		interviewsHandler.New(interviewProc, logger),
		feedbackHandler.Handler{},
		callsHandler.Handler{},
		limiter,
		testWebhookSecret,
		observability.NewMetrics().Handler(),
	)
	a.RegisterRoutes()
	return r
}

func TestRegisterRoutes_Public(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: `"ok"`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "mockly_call_sessions_active"},
		{name: "auth status", method: http.MethodGet, path: "/api/auth/status", wantStatus: http.StatusOK, wantBody: `"authenticated":false`},
		{name: "signout", method: http.MethodPost, path: "/api/auth/signout", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRegisterRoutes_ProtectedRequireSession(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{
		"/api/protected/user",
		"/api/protected/interviews",
		"/api/protected/interviews/latest",
		"/api/protected/interviews/0b7e6f43-5d55-4f4c-9b0e-3f1b0c7f6a11",
		"/api/protected/interviews/0b7e6f43-5d55-4f4c-9b0e-3f1b0c7f6a11/feedback",
		"/api/protected/calls/ws?mode=generate",
	} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRegisterRoutes_GenerateIsRateLimitedPerUser(t *testing.T) {
	r := newTestRouter(t)

	post := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/vapi/generate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(scripts.WebhookSecretHeader, testWebhookSecret)
		r.ServeHTTP(w, req)
		return w
	}

	// Missing fields fail validation but still count against the caller
	first := post(`{"userid":"user-1"}`)
	require.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := post(`{"userid":"user-1"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))

	other := post(`{"userid":"user-2"}`)
	assert.Equal(t, http.StatusBadRequest, other.Code)
}

func TestRegisterRoutes_GenerateRequiresWebhookSecret(t *testing.T) {
	r := newTestRouter(t)

	for name, secret := range map[string]string{"missing": "", "wrong": "not-the-secret"} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/vapi/generate", strings.NewReader(`{"userid":"user-1"}`))
			req.Header.Set("Content-Type", "application/json")
			if secret != "" {
				req.Header.Set(scripts.WebhookSecretHeader, secret)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			// Rejected before the limiter so no quota is consumed
			assert.Empty(t, w.Header().Get("X-RateLimit-Remaining"))
		})
	}
}
