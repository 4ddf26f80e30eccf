package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tea-backend/internal/cache"
	"tea-backend/internal/models"
)

func writeBatch(t *testing.T, dir, name string, records ...map[string]any) {
	t.Helper()
	b, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), b, 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRun_DryRun(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")
	dir := t.TempDir()
	writeBatch(t, dir, "admin.json",
		map[string]any{"adminCognitoId": "A1", "name": "Admin One", "email": "a1@example.com"})
	writeBatch(t, dir, "user.json",
		map[string]any{"userCognitoId": "U1", "name": "User One", "email": "u1@example.com"},
		map[string]any{"userCognitoId": "U2", "name": "", "email": "bad"})
	summary := filepath.Join(t.TempDir(), "summary.json")

	out, err := execute(t, "run", "--dry-run", "--data-dir", dir, "--summary-json", summary)
	require.NoError(t, err)
	assert.Contains(t, out, "Dry run")
	assert.Regexp(t, `User\s+1\s+1\s+1`, out)

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	var report models.RunReport
	require.NoError(t, json.Unmarshal(data, &report))
	assert.True(t, report.DryRun)
	assert.False(t, report.Reset)
	assert.Equal(t, []models.EntityKind{models.KindAdmin, models.KindUser}, report.Completed)
}

func TestRun_DryRunDuplicateAdminEmailExitsWithValidationCode(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")
	dir := t.TempDir()
	writeBatch(t, dir, "admin.json",
		map[string]any{"adminCognitoId": "A1", "name": "One", "email": "ops@example.com"},
		map[string]any{"adminCognitoId": "A2", "name": "Two", "email": "ops@example.com"})

	out, err := execute(t, "run", "--dry-run", "--data-dir", dir)
	require.Error(t, err)
	assert.Equal(t, exitValidation, exitCode(err))
	assert.Contains(t, out, "Run failed")
}

func TestRun_UsageErrors(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")

	_, err := execute(t, "run", "--dry-run", "--data-dir", filepath.Join(t.TempDir(), "nope"))
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = execute(t, "run", "--dry-run", "--data-dir", t.TempDir(), "--only", "Admin,Widget")
	assert.Equal(t, exitUsage, exitCode(err))

	_, err = execute(t, "run", "--dry-run", "--data-dir", t.TempDir(), "--source", "ftp")
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestRun_ListenDefaultsToMetricsConfig(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")
	t.Setenv("METRICS_LISTEN", "no-port")

	_, err := execute(t, "run", "--dry-run", "--data-dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.ErrorContains(t, err, "failed to listen on no-port")
}

func TestVerify_LastNeedsRedis(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")
	t.Setenv("REDIS_ADDR", "")

	_, err := execute(t, "verify", "--last")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.ErrorIs(t, err, cache.ErrNotConfigured)
}

func TestReset_RequiresConfirmation(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")

	_, err := execute(t, "reset")
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestMigrate_List(t *testing.T) {
	t.Setenv("LOG_ENVIRONMENT", "production")

	out, err := execute(t, "migrate", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "0001_schema.sql")
}

func TestParseKinds(t *testing.T) {
	kinds, err := parseKinds([]string{"Admin", " Stocks"})
	require.NoError(t, err)
	assert.Equal(t, []models.EntityKind{models.KindAdmin, models.KindStocks}, kinds)

	_, err = parseKinds([]string{"admin"})
	assert.Error(t, err)
}
