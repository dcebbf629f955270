package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"dua-reminders/api/middleware"
	"dua-reminders/internal/common"
	"dua-reminders/internal/mocks"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/storage"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"
)

func createTestRouter(t *testing.T, limiter *middleware.ClientRateLimiter) (*gin.Engine, *mocks.MockReminderService) {
	gin.SetMode(gin.TestMode)

	service := mocks.NewMockReminderService(gomock.NewController(t))
	router := gin.New()
	SetupRoutes(router, Dependencies{
		Service:     service,
		Store:       storage.NewMemoryStore(),
		Scheduler:   mocks.NewMockScheduler(),
		RateLimiter: limiter,
		Logger:      logger.FromZap(zaptest.NewLogger(t)),
	})
	return router, service
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupRoutes_HealthEndpoints(t *testing.T) {
	router, _ := createTestRouter(t, nil)

	for _, path := range []string{"/health", "/api/v1/health"} {
		w := serve(router, http.MethodGet, path)

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	}
}

func TestSetupRoutes_MetricsEndpoint(t *testing.T) {
	router, _ := createTestRouter(t, nil)

	serve(router, http.MethodGet, "/health")
	w := serve(router, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "dua_reminders_http_requests_total")
}

func TestSetupRoutes_ReminderEndpoints(t *testing.T) {
	router, service := createTestRouter(t, nil)
	id := common.ID("0d7c5b8e-51c6-4d1f-8c59-3c3f0f0f9a10")

	service.EXPECT().GetReminders(gomock.Any()).Return([]reminder.SupplicationReminder{}, nil)
	service.EXPECT().GetReminderStats(gomock.Any()).Return(&reminder.ReminderStats{}, nil)
	service.EXPECT().GetReminder(gomock.Any(), id).Return(nil, reminder.NewNotFoundError(id))
	service.EXPECT().PauseReminder(gomock.Any(), id).Return(nil, reminder.NewNotFoundError(id))
	service.EXPECT().ListScheduledNotifications(gomock.Any()).Return([]reminder.ScheduledNotification{}, nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/reminders").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/reminders/stats").Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/v1/reminders/"+id.String()).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/v1/reminders/"+id.String()+"/pause").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/notifications/scheduled").Code)
}

func TestSetupRoutes_UnknownRoute(t *testing.T) {
	router, _ := createTestRouter(t, nil)

	w := serve(router, http.MethodGet, "/api/v1/unknown")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetupRoutes_RateLimited(t *testing.T) {
	router, service := createTestRouter(t, middleware.NewClientRateLimiter(0.001, 1))
	service.EXPECT().GetReminders(gomock.Any()).Return([]reminder.SupplicationReminder{}, nil)

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/v1/reminders").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(router, http.MethodGet, "/api/v1/reminders").Code)

	// Root health check is outside the limited group
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health").Code)
}
