// Package config loads tally.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/accounts"
)

// FileName is the config file created by tally init.
const FileName = "tally.yaml"

// Environment variables that override file settings.
const (
	EnvStorePath  = "TALLY_STORE_PATH"
	EnvServerAddr = "TALLY_SERVER_ADDR"
	EnvLogLevel   = "TALLY_LOG_LEVEL"
	EnvLogFormat  = "TALLY_LOG_FORMAT"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger   LedgerConfig   `yaml:"ledger"`
	Store    StoreConfig    `yaml:"store"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Accounts AccountsConfig `yaml:"accounts"`
}

// LedgerConfig identifies the ledger.
type LedgerConfig struct {
	Name string `yaml:"name"`
}

// StoreConfig locates the SQLite database. A relative path is resolved
// against the config file's directory.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig controls tally serve.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// AccountsConfig names the accounts read by the retained earnings statement.
type AccountsConfig struct {
	CashDividends    string `yaml:"cash_dividends"`
	RetainedEarnings string `yaml:"retained_earnings"`
}

// Load reads a tally.yaml file from disk. Missing fields keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new ledger.
func Default(ledgerName string) *Config {
	return &Config{
		Ledger: LedgerConfig{Name: ledgerName},
		Store:  StoreConfig{Path: "tally.db"},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "console"},
		Accounts: AccountsConfig{
			CashDividends:    accounts.CashDividends,
			RetainedEarnings: accounts.RetainedEarnings,
		},
	}
}

// StorePath returns the database path, resolving a relative path against dir.
func (c *Config) StorePath(dir string) string {
	if filepath.IsAbs(c.Store.Path) {
		return c.Store.Path
	}
	return filepath.Join(dir, c.Store.Path)
}

// ApplyEnv overrides settings from the process environment and, beneath it,
// the dotenv file at envPath. A missing dotenv file is not an error.
func (c *Config) ApplyEnv(envPath string) error {
	vars := map[string]string{}
	if envPath != "" {
		fileVars, err := godotenv.Read(envPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return fmt.Errorf("reading %s: %w", envPath, err)
		default:
			vars = fileVars
		}
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}

	for key, dst := range map[string]*string{
		EnvStorePath:  &c.Store.Path,
		EnvServerAddr: &c.Server.Addr,
		EnvLogLevel:   &c.Log.Level,
		EnvLogFormat:  &c.Log.Format,
	} {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	return nil
}
