package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		DatabaseDSN:         "postgres://localhost/roster",
		RedisURL:            "redis://localhost:6379/0",
		LogLevel:            "info",
		PediatricDoctorRule: "FREQ=WEEKLY;BYDAY=TU,FR",
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		DatabaseDSN: "postgres://localhost/roster",
		RedisURL:    "redis://localhost:6379/0",
	}
	assert.NoError(t, Validate(cfg))
}

func TestValidate_MissingRequiredField(t *testing.T) {
	cfg := &Config{RedisURL: "redis://localhost:6379/0"}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidRRule(t *testing.T) {
	cfg := &Config{
		DatabaseDSN:         "postgres://localhost/roster",
		RedisURL:            "redis://localhost:6379/0",
		PediatricDoctorRule: "INVALID_RRULE_SYNTAX",
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid rrule")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := &Config{
		DatabaseDSN: "postgres://localhost/roster",
		RedisURL:    "redis://localhost:6379/0",
		LogLevel:    "verbose",
	}
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadFromPath_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_config.yaml")

	contents := `
databaseDSN: "postgres://localhost/roster"
redisURL: "redis://localhost:6379/0"
logLevel: "debug"
pediatricDoctorRule: "FREQ=WEEKLY;BYDAY=TU,FR"
solverPrimaryBudgetSeconds: 60
solverRelaxationBudgetSeconds: 10
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/roster", cfg.DatabaseDSN)
	assert.Equal(t, 60, cfg.SolverPrimaryBudgetSeconds)
}

func TestLoadFromPath_FileNotFound(t *testing.T) {
	_, err := LoadFromPath("/nonexistent/path/config.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadFromPath_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("databaseDSN: \"x\"\n  bad indentation"), 0644))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}
