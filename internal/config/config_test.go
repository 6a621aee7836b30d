package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp isolates the test from any merchants.yaml or .env in the package dir.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CONFIG_FILE", "HTTP_ADDR", "READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT", "SQLITE_PATH", "DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT", "DEV_SEED"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, "merchants.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.DevSeed)
	assert.Equal(t, "sqlite", cfg.PersistentBackend())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	yml := `
http:
  addr: ":9000"
  shutdown_timeout: 3s
storage:
  sqlite_path: data/file.db
log:
  level: debug
dev_seed: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merchants.yaml"), []byte(yml), 0o644))
	t.Setenv("HTTP_ADDR", ":9100")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.HTTP.Addr, "env wins over file")
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "data/file.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.DevSeed)
}

func TestLoad_EmptyConfigFileUsesDefault(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merchants.yaml"), []byte("storage:\n  sqlite_path: data/file.db\n"), 0o644))

	for name, set := range map[string]func(){
		"empty":      func() { t.Setenv("CONFIG_FILE", "") },
		"whitespace": func() { t.Setenv("CONFIG_FILE", "  ") },
		"unset":      func() { require.NoError(t, os.Unsetenv("CONFIG_FILE")) },
	} {
		set()
		cfg, err := Load()
		require.NoError(t, err, name)
		assert.Equal(t, "data/file.db", cfg.Storage.SQLitePath, name)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("CONFIG_FILE", "does-not-exist.yaml")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_DotEnvAndDatabaseURL(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	require.NoError(t, os.Unsetenv("DATABASE_URL"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=postgres://localhost/merchants\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/merchants", cfg.Storage.DatabaseURL)
	assert.Equal(t, "postgres", cfg.PersistentBackend())
	// godotenv exported it into the process; drop it for later tests
	_ = os.Unsetenv("DATABASE_URL")
}

func TestGetEnvAsBool(t *testing.T) {
	for in, want := range map[string]bool{"1": true, "yes": true, "TRUE": true, "0": false, "no": false} {
		t.Setenv("DEV_SEED", in)
		assert.Equal(t, want, getEnvAsBool("DEV_SEED", !want), in)
	}
	t.Setenv("DEV_SEED", "maybe")
	assert.True(t, getEnvAsBool("DEV_SEED", true))
}
