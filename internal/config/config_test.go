package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supporthub/chat-routing-service/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())

	assert.Equal(t, "redis", cfg.Store.Type)
	assert.Equal(t, "localhost", cfg.Store.RedisHost)
	assert.Equal(t, "chatrouting", cfg.Store.MongoDatabase)

	assert.Equal(t, "amqp", cfg.Intake.Type)
	assert.Equal(t, "chat.session.intake", cfg.Intake.Queue)
	assert.Equal(t, 256, cfg.Intake.BufferSize)
	assert.Equal(t, 5, cfg.Intake.RetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.Intake.RetryDelay)

	assert.Equal(t, time.Second, cfg.Coordinator.DispatchInterval)
	assert.Equal(t, time.Second, cfg.Coordinator.DrainInterval)
	assert.Equal(t, time.Second, cfg.Coordinator.ReapInterval)
	assert.Equal(t, time.Minute, cfg.Coordinator.ShiftInterval)
	assert.Equal(t, 200*time.Second, cfg.Coordinator.InactivityThreshold)

	assert.Empty(t, cfg.Roster.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_TYPE", "mongodb")
	t.Setenv("INTAKE_TYPE", "memory")
	t.Setenv("INACTIVITY_THRESHOLD_SECONDS", "30")
	t.Setenv("ROSTER_PATH", "/etc/chat/roster.yaml")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "mongodb", cfg.Store.Type)
	assert.Equal(t, "memory", cfg.Intake.Type)
	assert.Equal(t, 30*time.Second, cfg.Coordinator.InactivityThreshold)
	assert.Equal(t, "/etc/chat/roster.yaml", cfg.Roster.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_MalformedIntFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("REAP_INTERVAL_SECONDS", "three")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, time.Second, cfg.Coordinator.ReapInterval)
}
