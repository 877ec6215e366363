package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MonitoringPort)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "hostel_db", cfg.Database.Name)
	assert.Equal(t, "hostel-identity", cfg.JWT.Issuer)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6432")
	t.Setenv("DB_USER", "hostel")
	t.Setenv("DB_PASSWORD", "hunter2")
	t.Setenv("DB_NAME", "hostel_prod")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("ARCHIVE_BUCKET", "hostel-reports")

	cfg := Load()
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.Equal(t, "hostel", cfg.Database.User)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "hostel_prod", cfg.Database.Name)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, "hostel-reports", cfg.Archive.Bucket)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	yaml := `
server:
  port: 9999
jwt:
  secret: file-secret
  issuer: my-identity
database:
  name: hostel_test
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)
	assert.Equal(t, "my-identity", cfg.JWT.Issuer)
	assert.Equal(t, "hostel_test", cfg.Database.Name)
}
