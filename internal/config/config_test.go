package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Mode)
	assert.Equal(t, "campushub", cfg.Database.DBName)
	assert.Equal(t, "24h", cfg.JWT.TokenExpiration)
	assert.Equal(t, "campushub.app", cfg.JWT.Issuer)
	assert.Equal(t, "s3", cfg.Storage.Driver)
	assert.Equal(t, "campushub-notes", cfg.Storage.Bucket)
	assert.Equal(t, 10, cfg.Upload.MaxSizeMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "local")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: \"8081\"\nstorage:\n  driver: s3\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoadConfig_InvalidStorageDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetPostgresConnectionString(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	dsn := cfg.GetPostgresConnectionString()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "campushub")
	assert.Contains(t, dsn, "sslmode=disable")
}
