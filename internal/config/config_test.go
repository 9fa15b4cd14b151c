package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.NotEmpty(t, cfg.Store.Dir)
	assert.Equal(t, 2*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "classic", cfg.UI.Theme)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.LoadDelay)
	assert.Equal(t, "warn", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
store:
  backend: sqlite
  path: "/tmp/shoplist-test.db"
  timeout: "5s"
ui:
  theme: neon
  load_delay: "0s"
logging:
  level: debug
  format: json
  file: "/tmp/shoplist.log"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Store.Backend)
	assert.Equal(t, "/tmp/shoplist-test.db", cfg.Store.Path)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "neon", cfg.UI.Theme)
	assert.Equal(t, time.Duration(0), cfg.UI.LoadDelay)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/shoplist.log", cfg.Logging.File)

	// untouched sections keep their defaults
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("SHOPLIST_TEST_REDIS_PW", "s3cret")
	path := writeConfig(t, `
store:
  backend: redis
  redis_addr: "cache:6379"
  redis_password: "${SHOPLIST_TEST_REDIS_PW}"
  key_prefix: "${SHOPLIST_TEST_UNSET_VAR}home:"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Store.RedisPassword)
	assert.Equal(t, "home:", cfg.Store.KeyPrefix)
}

func TestLoad_HomeExpansion(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	path := writeConfig(t, `
store:
  dir: "~/lists"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "lists"), cfg.Store.Dir)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown backend":  "store:\n  backend: mongo\n",
		"unknown theme":    "ui:\n  theme: pink\n",
		"bad format":       "logging:\n  format: xml\n",
		"bad duration":     "ui:\n  load_delay: soon\n",
		"negative delay":   "ui:\n  load_delay: -1s\n",
		"zero timeout":     "store:\n  timeout: 0s\n",
		"empty sqlite":     "store:\n  backend: sqlite\n  path: \"\"\n",
		"invalid yaml":     "store: [unclosed\n",
		"empty redis addr": "store:\n  backend: redis\n  redis_addr: \"\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.yaml")
	assert.Equal(t, "/explicit.yaml", Resolve("/explicit.yaml"))
	assert.Equal(t, "/from/env.yaml", Resolve(""))
}
