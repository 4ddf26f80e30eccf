package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "tea_db", cfg.Database.Name)
	assert.Equal(t, "dir", cfg.Seed.Source)
	assert.True(t, cfg.Seed.Reset)
	assert.Equal(t, 2*time.Second, cfg.Seed.DuplicateWindow)
	assert.Equal(t, 30*time.Minute, cfg.Redis.LockTTL)
	assert.Equal(t, "postgres://postgres:@localhost:5432/tea_db?sslmode=disable", cfg.DSN())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "seeder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database:
  host: db.internal
  port: 6543
seed:
  data_dir: /data/seed
  reset: false
`), 0o644))

	t.Setenv("DB_PORT", "7000")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 7000, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "/data/seed", cfg.Seed.DataDir)
	assert.False(t, cfg.Seed.Reset)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
}
