package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
server:
  port: 8080
backend:
  base_url: http://backend.test/api
session:
  secret: 0123456789abcdef0123456789abcdef
`

func TestParse(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, "investiga_session", cfg.Session.CookieName)
		assert.Equal(t, 7*24*time.Hour, cfg.SessionTTL())
		assert.Equal(t, time.Minute, cfg.CacheTTL())
		assert.Equal(t, time.Duration(0), cfg.BackendTimeout())
		assert.Equal(t, "es", cfg.Server.DefaultLanguage)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
		assert.Equal(t, "0 0 * * * *", cfg.Scheduler.PurgeExpiredSessions)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "text", cfg.Log.Format)
		assert.False(t, cfg.ReportingEnabled())
	})

	t.Run("Env override", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "https://api.example.edu")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Parse([]byte(validYAML))
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.edu", cfg.Backend.BaseURL)
		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, ":9090", cfg.GetServerAddress())
		assert.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("Short secret", func(t *testing.T) {
		_, err := Parse([]byte(`
server:
  port: 8080
backend:
  base_url: http://backend.test
session:
  secret: short
`))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 32 characters")
	})

	t.Run("Postgres store requires database", func(t *testing.T) {
		_, err := Parse([]byte(validYAML + "  store: postgres\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "database host is required")
	})

	t.Run("Unknown store", func(t *testing.T) {
		_, err := Parse([]byte(validYAML + "  store: etcd\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported session store")
	})

	t.Run("Missing backend", func(t *testing.T) {
		_, err := Parse([]byte("server:\n  port: 8080\n"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "backend base URL is required")
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://:@:0/?sslmode=", cfg.GetDatabaseConnectionString())

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestGetAccessLevel(t *testing.T) {
	assert.Equal(t, AccessPublic, GetAccessLevel("login"))
	assert.Equal(t, AccessVerified, GetAccessLevel("projects.create"))
	assert.Equal(t, AccessSystemAdmin, GetAccessLevel("reference.delete"))
	assert.Equal(t, AccessSystemAdmin, GetAccessLevel("does.not.exist"))
}
