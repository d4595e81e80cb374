package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(nil, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8800", cfg.Endpoint)
	assert.Equal(t, "local", cfg.Instance)
	assert.Equal(t, 8800, cfg.Port)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.TablesFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ots.yaml"), []byte(`
port: 9001
data_dir: /var/lib/ots
log_format: json
`), 0o644))

	cfg, err := loadConfig(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
	assert.Equal(t, "/var/lib/ots", cfg.DataDir)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "local", cfg.Instance)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ots.yaml"), []byte("port: 9001\n"), 0o644))
	t.Setenv("OTS_PORT", "9002")
	t.Setenv("OTS_DATA_DIR", "/tmp/ots")

	cfg, err := loadConfig(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, 9002, cfg.Port)
	assert.Equal(t, "/tmp/ots", cfg.DataDir)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("OTS_PORT", "9002")
	t.Setenv("OTS_INSTANCE", "from-env")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	registerFlags(fs, "port", "instance", "tables")
	require.NoError(t, fs.Parse([]string{"--port", "9003", "--tables", "seed.yaml"}))

	cfg, err := loadConfig(fs, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 9003, cfg.Port)
	assert.Equal(t, "seed.yaml", cfg.TablesFile)
	// Unset flags leave lower layers alone.
	assert.Equal(t, "from-env", cfg.Instance)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"log level", map[string]string{"OTS_LOG_LEVEL": "loud"}},
		{"log format", map[string]string{"OTS_LOG_FORMAT": "xml"}},
		{"port", map[string]string{"OTS_PORT": "70000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := loadConfig(nil, t.TempDir())
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := newLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = newLogger(&Config{LogLevel: "warn", LogFormat: "text"})
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
}
