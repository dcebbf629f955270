//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"dua-reminders/api/routes"
	"dua-reminders/internal/catalog"
	"dua-reminders/internal/common"
	"dua-reminders/internal/config"
	"dua-reminders/internal/database"
	"dua-reminders/internal/events"
	"dua-reminders/internal/mocks"
	"dua-reminders/internal/notifier"
	"dua-reminders/internal/reminder"
	"dua-reminders/internal/scheduler"
	"dua-reminders/internal/storage"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// TestContainer manages the lifecycle of a test database container
type TestContainer struct {
	Container testcontainers.Container
	Config    config.DatabaseConfig
}

// SetupTestDatabase creates and starts a PostgreSQL test container
func SetupTestDatabase(t *testing.T) *TestContainer {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("test_reminders"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		require.NoError(t, postgresContainer.Terminate(ctx), "Failed to terminate test container")
	})

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	return &TestContainer{
		Container: postgresContainer,
		Config: config.DatabaseConfig{
			Host:            host,
			Port:            port.Int(),
			User:            "test_user",
			Password:        "test_password",
			DBName:          "test_reminders",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
		},
	}
}

// Stack is one running process: storage, service, dispatcher and HTTP router
type Stack struct {
	Store     *storage.GormStore
	Notifier  *notifier.LocalNotifier
	Service   reminder.ReminderService
	Scheduler scheduler.Scheduler
	Sender    *mocks.MockSender
	Router    *gin.Engine
	Clock     *common.MockClock
	Logger    *zap.Logger
}

// StartStack opens a fresh connection to the container database and wires a
// complete process on top of it. Two stacks on one container model a restart.
func StartStack(t *testing.T, tc *TestContainer, clock *common.MockClock) *Stack {
	ctx := context.Background()
	zapLogger := zaptest.NewLogger(t)

	db, err := database.NewPostgresConnection(ctx, tc.Config)
	require.NoError(t, err, "Failed to connect to test database")
	require.NoError(t, storage.RunMigrations(db))
	store := storage.NewGormStore(db, zapLogger)

	texts, err := catalog.Load("")
	require.NoError(t, err)

	eventBus := events.NewEventBus(zapLogger)
	local := notifier.NewLocalNotifier(true, zapLogger)
	service := reminder.NewReminderService(
		reminder.NewReminderStore(store, zapLogger),
		local,
		eventBus,
		clock,
		zapLogger,
		reminder.ServiceConfig{
			RecordFiredEvents: true,
			PublishRetries:    2,
			Texts:             texts,
		},
	)

	sender := &mocks.MockSender{}
	sender.On("Name").Return("mock").Maybe()
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Maybe()
	sched, err := scheduler.NewScheduler(config.SchedulerConfig{
		PollInterval:    1,
		WorkerCount:     1,
		ShutdownTimeout: 5,
		CleanupSchedule: "@every 1h",
		Enabled:         true,
	}, local, sender, service, eventBus, clock, zapLogger)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	routes.SetupRoutes(router, routes.Dependencies{
		Service:   service,
		Store:     store,
		Scheduler: sched,
		Logger:    logger.FromZap(zapLogger),
	})

	stack := &Stack{
		Store:     store,
		Notifier:  local,
		Service:   service,
		Scheduler: sched,
		Sender:    sender,
		Router:    router,
		Clock:     clock,
		Logger:    zapLogger,
	}
	t.Cleanup(stack.Shutdown)
	return stack
}

// Shutdown stops the dispatcher and closes the database connection
func (s *Stack) Shutdown() {
	if s.Scheduler.IsRunning() {
		if err := s.Scheduler.Stop(); err != nil {
			s.Logger.Warn("Failed to stop scheduler", zap.Error(err))
		}
	}
	if err := s.Store.Close(); err != nil {
		s.Logger.Warn("Failed to close store", zap.Error(err))
	}
}
