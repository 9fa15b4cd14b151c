// Package config loads the shoplist YAML config, expanding ${VAR}
// references and filling defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "SHOPLIST_CONFIG"

// Store backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the complete shoplist configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig selects and configures the key-value backend.
type StoreConfig struct {
	Backend       string `yaml:"backend"`
	Dir           string `yaml:"dir"`  // file backend
	Path          string `yaml:"path"` // sqlite backend
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	KeyPrefix     string `yaml:"key_prefix"`

	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string `yaml:"theme"`

	// LoadDelay is the cosmetic pause before the TUI shows the list.
	LoadDelay    time.Duration `yaml:"-"`
	LoadDelayRaw string        `yaml:"load_delay"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	dataDir := defaultDataDir()
	return &Config{
		Store: StoreConfig{
			Backend:   BackendFile,
			Dir:       dataDir,
			Path:      filepath.Join(dataDir, "shoplist.db"),
			RedisAddr: "localhost:6379",
			Timeout:   2 * time.Second,
		},
		UI: UIConfig{
			Theme:     "classic",
			LoadDelay: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Resolve picks the config file: the explicit path, then $SHOPLIST_CONFIG,
// then the user config dir. It returns "" when none applies.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	p := filepath.Join(dir, "shoplist", "config.yaml")
	if _, err := os.Stat(p); err == nil {
		return p
	}
	return ""
}

// Load reads the configuration file at path over the defaults.
// An empty path returns the defaults.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	cfg.Store.Dir = expandHome(cfg.Store.Dir)
	cfg.Store.Path = expandHome(cfg.Store.Path)
	cfg.Logging.File = expandHome(cfg.Logging.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

var envVarRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} with the variable's value, or "" if unset.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(envVarRe.FindStringSubmatch(match)[1])
	})
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

func defaultDataDir() string {
	if x := os.Getenv("XDG_DATA_HOME"); x != "" {
		return filepath.Join(x, "shoplist")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "shoplist")
	}
	return ".shoplist"
}

// Validate checks that the configuration is usable.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.Dir == "" {
			return errors.New("store.dir is required for the file backend")
		}
	case BackendSQLite:
		if c.Store.Path == "" {
			return errors.New("store.path is required for the sqlite backend")
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			return errors.New("store.redis_addr is required for the redis backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("store.backend %q is not one of file, sqlite, redis, memory", c.Store.Backend)
	}

	switch c.UI.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("ui.theme %q is not one of classic, neon, mono", c.UI.Theme)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	if c.UI.LoadDelay < 0 {
		return errors.New("ui.load_delay must not be negative")
	}
	if c.Store.Timeout <= 0 {
		return errors.New("store.timeout must be positive")
	}
	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	var err error

	if cfg.Store.TimeoutRaw != "" {
		cfg.Store.Timeout, err = time.ParseDuration(cfg.Store.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing timeout %q: %w", cfg.Store.TimeoutRaw, err)
		}
	}

	if cfg.UI.LoadDelayRaw != "" {
		cfg.UI.LoadDelay, err = time.ParseDuration(cfg.UI.LoadDelayRaw)
		if err != nil {
			return fmt.Errorf("parsing load_delay %q: %w", cfg.UI.LoadDelayRaw, err)
		}
	}

	return nil
}
