package routers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublicRouterAnswersPreflight(t *testing.T) {
	engine := NewPublicRouter(Config{
		RunMode:     gin.TestMode,
		AppName:     "ankibridge-service",
		AppVersion:  "test",
		CORSOrigins: []string{"http://localhost"},
	}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestPublicRouterPreflightFromUnknownOrigin(t *testing.T) {
	engine := NewPublicRouter(Config{
		RunMode:     gin.TestMode,
		AppName:     "ankibridge-service",
		AppVersion:  "test",
		CORSOrigins: []string{"http://localhost"},
	}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPublicRouterBanner(t *testing.T) {
	engine := NewPublicRouter(Config{
		RunMode:    gin.TestMode,
		AppName:    "ankibridge-service",
		AppVersion: "test",
	}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ankibridge-service is running")
	assert.Equal(t, "ankibridge-service/test", w.Header().Get("Server"))
}

func TestPrivateRouterStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewPrivateRouter(func() (interface{}, error) {
		return map[string]string{"state": "ok"}, nil
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"state":"ok"`)
}

func TestPrivateRouterMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewPrivateRouter(nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
