package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "4096", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Equal(t, 100*time.Millisecond, cfg.StreamDelay)
}

func TestFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.yaml")
	data := []byte("addr: \"5001\"\nlog_level: debug\nlog_json: true\nstream_delay: 5ms\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, 5*time.Millisecond, cfg.StreamDelay)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mock.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \"5001\"\n"), 0o644))

	t.Setenv("ADDR", "6001")
	t.Setenv("STREAM_DELAY", "2ms")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "6001", cfg.Addr)
	assert.Equal(t, 2*time.Millisecond, cfg.StreamDelay)
}

func TestBadStreamDelay(t *testing.T) {
	t.Setenv("STREAM_DELAY", "not-a-duration")
	_, err := Load("")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
