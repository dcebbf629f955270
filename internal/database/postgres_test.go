package database

import (
	"context"
	"testing"

	"dua-reminders/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := config.DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "app",
		Password: "secret",
		DBName:   "reminders",
		SSLMode:  "require",
	}

	dsn := DSN(cfg)

	assert.Contains(t, dsn, "host=db.internal")
	assert.Contains(t, dsn, "port=5433")
	assert.Contains(t, dsn, "dbname=reminders")
	assert.Contains(t, dsn, "sslmode=require")
	assert.Contains(t, dsn, "prefer_simple_protocol=true")
}

func TestHealthCheck_NilDB(t *testing.T) {
	err := HealthCheck(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nil")
}
