package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Create a temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"
  base_url: "https://portal.example.com"
  cors_origins:
    - "https://app.example.com"

newsletter:
  from_email: "news@example.com"
  from_name: "Example News"
  feed_url: "https://example.com/blog/feed.xml"

ses:
  region: "eu-west-1"
  access_key: "test-access"
  timeout_seconds: 45
  enabled: true

redis:
  enabled: true
  addr: "redis:6379"

postgres:
  enabled: true
  database_url: "postgres://portal:secret@db/portal"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Test server config
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://portal.example.com", cfg.Server.BaseURL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)

	// Test newsletter config
	assert.Equal(t, "news@example.com", cfg.Newsletter.FromEmail)
	assert.Equal(t, "https://example.com/blog/feed.xml", cfg.Newsletter.FeedURL)

	// Test SES config
	assert.Equal(t, "eu-west-1", cfg.SES.Region)
	assert.Equal(t, 45, cfg.SES.TimeoutSeconds)
	assert.True(t, cfg.SES.Enabled)

	// Test redis and postgres config
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.True(t, cfg.Postgres.Enabled)
	assert.Equal(t, "postgres://portal:secret@db/portal", cfg.Postgres.DatabaseURL)
}

func TestLoadDefaults(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
newsletter:
  feed_url: "https://example.com/feed.xml"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	// Verify defaults are applied
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.NotEmpty(t, cfg.Server.CORSOrigins)
	assert.Equal(t, "portal_session", cfg.Auth.CookieName)
	assert.Equal(t, 86400, cfg.Auth.CookieMaxAge)
	assert.Equal(t, "newsletter@portal.dev", cfg.Newsletter.FromEmail)
	assert.Equal(t, 30, cfg.SES.TimeoutSeconds)
	assert.Equal(t, "us-west-2", cfg.SES.Region)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.False(t, cfg.Seed.Enabled)
}

func TestLoadFromEnv(t *testing.T) {
	// Create a minimal config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
ses:
  access_key: "file-access"
  region: "us-west-2"
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	// Set environment variables
	os.Setenv("AWS_SES_ACCESS_KEY", "env-access")
	os.Setenv("AWS_SES_REGION", "us-east-1")
	os.Setenv("DATABASE_URL", "postgres://env-db/portal")
	os.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	defer func() {
		os.Unsetenv("AWS_SES_ACCESS_KEY")
		os.Unsetenv("AWS_SES_REGION")
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("CORS_ORIGINS")
	}()

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	// Environment variables should override file values
	assert.Equal(t, "env-access", cfg.SES.AccessKey)
	assert.Equal(t, "us-east-1", cfg.SES.Region)
	assert.Equal(t, "postgres://env-db/portal", cfg.Postgres.DatabaseURL)
	assert.True(t, cfg.Postgres.Enabled, "DATABASE_URL implies postgres enabled")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	cfg := SESConfig{TimeoutSeconds: 45}
	assert.Equal(t, 45*1000000000, int(cfg.Timeout().Nanoseconds()))
}
