package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"employee-api/internal/middleware"
	"employee-api/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRequestID(t *testing.T) {
	t.Run("propagates incoming header", func(t *testing.T) {
		r := setupRouter()
		r.Use(middleware.RequestID())

		var seen string
		r.GET("/ping", func(c *gin.Context) {
			seen = contextutil.GetRequestID(c.Request.Context())
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(middleware.RequestIDHeader, "REQ-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "REQ-123", seen)
		assert.Equal(t, "REQ-123", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("generates id when missing", func(t *testing.T) {
		r := setupRouter()
		r.Use(middleware.RequestID())
		r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})
}

func TestContextLogger(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RequestID(), middleware.ContextLogger(zap.NewNop()))

	var rid string
	var hasLogger bool
	r.GET("/ping", func(c *gin.Context) {
		ctx := c.Request.Context()
		rid = contextutil.GetRequestID(ctx)
		fallback := zap.NewNop()
		hasLogger = contextutil.GetLogger(ctx, fallback) != fallback
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "REQ-XYZ")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "REQ-XYZ", rid)
	assert.True(t, hasLogger)
}

func TestRateLimitByIP(t *testing.T) {
	r := setupRouter()
	r.Use(middleware.RateLimitByIP(0.001, 2))
	r.POST("/employees", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/employees", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	req := httptest.NewRequest(http.MethodPost, "/employees", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
