package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-api/internal/config"
)

func TestEnvReader_Defaults(t *testing.T) {
	t.Setenv("ENV", config.EnvDev)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := config.NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, config.EnvDev, cfg.Env)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, "tasks", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.OperationTimeout)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestEnvReader_MissingRequired(t *testing.T) {
	t.Setenv("ENV", config.EnvDev)
	// Setenv registers the restore; the variable itself must be absent.
	t.Setenv("MONGO_URI", "placeholder")
	require.NoError(t, os.Unsetenv("MONGO_URI"))

	_, err := config.NewEnvReader().Read()
	require.Error(t, err)
}

func TestEnvReader_Overrides(t *testing.T) {
	t.Setenv("ENV", config.EnvProd)
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DATABASE", "tasks_prod")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_LIST_TTL", "5m")

	cfg, err := config.NewEnvReader().Read()
	require.NoError(t, err)

	assert.Equal(t, "tasks_prod", cfg.Mongo.Database)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.ListTTL)
}
