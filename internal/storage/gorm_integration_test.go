//go:build integration

package storage

import (
	"context"
	"testing"
	"time"

	"dua-reminders/internal/config"
	"dua-reminders/internal/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
)

func setupGormStore(t *testing.T) *GormStore {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
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
		require.NoError(t, container.Terminate(ctx))
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	db, err := database.NewPostgresConnection(ctx, config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "test_user",
		Password:        "test_password",
		DBName:          "test_reminders",
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 300,
	})
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	store := NewGormStore(db, zaptest.NewLogger(t))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestGormStore_Integration(t *testing.T) {
	store := setupGormStore(t)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	_, err := store.Get(ctx, "supplication_reminders")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "supplication_reminders", []byte(`[]`)))
	require.NoError(t, store.Set(ctx, "supplication_reminders", []byte(`[{"id":"a"}]`)))

	got, err := store.Get(ctx, "supplication_reminders")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, store.Delete(ctx, "supplication_reminders"))
	_, err = store.Get(ctx, "supplication_reminders")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
