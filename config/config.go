// Package config assembles CLI configuration from the environment (with
// optional .env file) and an optional YAML config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the CLI needs to build a client and lay out the
// data tree.
type Config struct {
	APIKey      string        `yaml:"api_key"`
	APISecret   string        `yaml:"api_secret"`
	Environment string        `yaml:"environment"`
	Account     string        `yaml:"account"`
	DataDir     string        `yaml:"data_dir"`
	JournalPath string        `yaml:"journal_path"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present (it never overrides variables
// already set in the real environment).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:      os.Getenv("T212_API_KEY"),
		APISecret:   os.Getenv("T212_API_SECRET"),
		Environment: getEnv("T212_ENV", "demo"),
		Account:     os.Getenv("T212_ACCOUNT"),
		DataDir:     getEnv("T212_DATA_DIR", "data"),
		JournalPath: os.Getenv("T212_JOURNAL"),
		Timeout:     30 * time.Second,
	}

	if v := os.Getenv("T212_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("bad T212_TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads a YAML config file, then lets environment variables
// override individual fields.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{Environment: "demo", DataDir: "data", Timeout: 30 * time.Second}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	_ = godotenv.Load()
	overrideEnv(&cfg.APIKey, "T212_API_KEY")
	overrideEnv(&cfg.APISecret, "T212_API_SECRET")
	overrideEnv(&cfg.Environment, "T212_ENV")
	overrideEnv(&cfg.Account, "T212_ACCOUNT")
	overrideEnv(&cfg.DataDir, "T212_DATA_DIR")
	overrideEnv(&cfg.JournalPath, "T212_JOURNAL")

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can produce a working client.
func (c *Config) Validate() error {
	if c.APIKey == "" || c.APISecret == "" {
		return fmt.Errorf("T212_API_KEY and T212_API_SECRET are required")
	}
	switch strings.ToLower(c.Environment) {
	case "live", "demo", "practice":
	default:
		return fmt.Errorf("environment must be live or demo, got %q", c.Environment)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

// Root returns the data directory, nested under the account label when one
// is configured.
func (c *Config) Root() string {
	if c.Account != "" {
		return filepath.Join(c.DataDir, c.Account)
	}
	return c.DataDir
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "demo"
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.JournalPath == "" {
		c.JournalPath = filepath.Join(c.Root(), "journal.db")
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func overrideEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
