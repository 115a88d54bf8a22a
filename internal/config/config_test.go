package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("REMINDER_PERSIST_ON_READ", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.True(t, cfg.Reminders.PersistOnRead)
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 15*time.Minute, cfg.MinIO.PresignExpiry())
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Minute, cfg.Reminders.SweepInterval())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FileOverriddenByEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  port: "9090"
  public_base_url: https://projects.example.com
database:
  host: file-host
  name: projects
reminders:
  sweep_interval_sec: 30
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("DB_HOST", "env-host")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://projects.example.com", cfg.PublicBaseURL)
	assert.Equal(t, "env-host", cfg.Database.Host)
	assert.Equal(t, "projects", cfg.Database.Name)
	assert.Equal(t, 30*time.Second, cfg.Reminders.SweepInterval())
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestGetters(t *testing.T) {
	k := koanf.New(".")
	require.NoError(t, k.Set("s", "value"))
	require.NoError(t, k.Set("b", "true"))
	require.NoError(t, k.Set("bad", "invalid"))
	require.NoError(t, k.Set("i", "123"))

	assert.Equal(t, "value", getString(k, "s", "default"))
	assert.Equal(t, "default", getString(k, "missing", "default"))

	assert.True(t, getBool(k, "b", false))
	assert.True(t, getBool(k, "bad", true))
	assert.False(t, getBool(k, "missing", false))

	assert.Equal(t, 123, getInt(k, "i", 0))
	assert.Equal(t, 10, getInt(k, "bad", 10))
	assert.Equal(t, 10, getInt(k, "missing", 10))
}
