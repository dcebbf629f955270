package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRequestLogging_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogging(logger.FromZap(zaptest.NewLogger(t))))

	var scoped interface{}
	router.GET("/ping", func(c *gin.Context) {
		scoped, _ = c.Get("logger")
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
	assert.IsType(t, &logger.Logger{}, scoped)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewClientRateLimiter(0.001, 2)
	router := gin.New()
	router.Use(RateLimit(limiter))
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func(remoteAddr string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = remoteAddr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1234"))

	// Budgets are tracked per client
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1234"))
}

func TestClientRateLimiter_GetLimiter(t *testing.T) {
	limiter := NewClientRateLimiter(10, 5)

	first := limiter.GetLimiter("client-a")
	require.NotNil(t, first)
	assert.Same(t, first, limiter.GetLimiter("client-a"))
	assert.NotSame(t, first, limiter.GetLimiter("client-b"))
	assert.Equal(t, 5, first.Burst())
}
