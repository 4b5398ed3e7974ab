package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv keeps the caller's environment out of the defaults.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{"PORT", "POSTBOARD_ADDR", "POSTBOARD_LOG_LEVEL", "POSTBOARD_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "postboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, ":5001", cfg.Server.Addr)
	assert.Len(t, cfg.Seed, 2)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
server:
  addr: "127.0.0.1:8080"
  request_timeout: 30s
logging:
  level: debug
  format: console
seed:
  - title: Only
    content: One post
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "30s", cfg.Server.RequestTimeout)
	assert.Equal(t, "10s", cfg.Server.ReadTimeout, "unset keys keep defaults")
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []SeedPost{{Title: "Only", Content: "One post"}}, cfg.Seed)

	request, read, write, shutdown := cfg.Server.Durations()
	assert.Equal(t, 30*time.Second, request)
	assert.Equal(t, 10*time.Second, read)
	assert.Equal(t, 10*time.Second, write)
	assert.Equal(t, 5*time.Second, shutdown)
}

func TestLoadEmptySeed(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, "seed: []\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Seed)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("POSTBOARD_LOG_LEVEL", "warn")
	t.Setenv("POSTBOARD_LOG_FORMAT", "console")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)

	t.Run("POSTBOARD_ADDR wins over PORT", func(t *testing.T) {
		t.Setenv("POSTBOARD_ADDR", "localhost:7000")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "localhost:7000", cfg.Server.Addr)
	})
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	clearEnv(t)

	cases := map[string]string{
		"malformed yaml":    "server: [",
		"bad duration":      "server:\n  read_timeout: soon\n",
		"negative duration": "server:\n  write_timeout: -1s\n",
		"short timeout":     "server:\n  request_timeout: 500ms\n",
		"unknown level":     "logging:\n  level: loud\n",
		"unknown format":    "logging:\n  format: xml\n",
		"empty seed title":  "seed:\n  - content: body\n",
		"empty addr":        "server:\n  addr: \"\"\n",
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
