package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables holding secrets. They are never written to a file.
// EnvLogin is the passphrase a CLI user presents; EnvPassphrase is the one
// the gate expects.
const (
	EnvPassphrase    = "TRADEBOARD_PASSPHRASE"
	EnvLogin         = "TRADEBOARD_LOGIN"
	EnvSessionSecret = "TRADEBOARD_SESSION_SECRET"
	EnvCredentials   = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvLogLevel      = "TRADEBOARD_LOG_LEVEL"
)

// Config represents the complete dashboard configuration
type Config struct {
	Source    SourceConfig    `json:"source" yaml:"source"`
	Columns   ColumnsConfig   `json:"columns" yaml:"columns"`
	Portfolio PortfolioConfig `json:"portfolio" yaml:"portfolio"`
	Export    ExportConfig    `json:"export" yaml:"export"`
	Server    ServerConfig    `json:"server" yaml:"server"`
	LogLevel  string          `json:"log_level" yaml:"log_level"`

	Passphrase    string `json:"-" yaml:"-"`
	SessionSecret string `json:"-" yaml:"-"`
}

// SourceConfig says where the trade sheet lives
type SourceConfig struct {
	Type            string `json:"type" yaml:"type"` // "sheets", "xlsx" or "csv"
	SpreadsheetID   string `json:"spreadsheet_id,omitempty" yaml:"spreadsheet_id,omitempty"`
	Path            string `json:"path,omitempty" yaml:"path,omitempty"`
	Range           string `json:"range,omitempty" yaml:"range,omitempty"` // e.g. "CONTROLE!A1:T"
	CredentialsFile string `json:"credentials_file,omitempty" yaml:"credentials_file,omitempty"`
	CacheTTL        string `json:"cache_ttl,omitempty" yaml:"cache_ttl,omitempty"` // e.g. "10m"; empty disables
}

// ID is the document identifier handed to the fetcher.
func (s SourceConfig) ID() string {
	if s.Type == "sheets" {
		return s.SpreadsheetID
	}
	return s.Path
}

// TTL parses CacheTTL. Zero means no cache.
func (s SourceConfig) TTL() (time.Duration, error) {
	if s.CacheTTL == "" {
		return 0, nil
	}
	return time.ParseDuration(s.CacheTTL)
}

// ColumnsConfig contains sheet reading parameters
type ColumnsConfig struct {
	Fees         string   `json:"fees" yaml:"fees"`
	ClosedStatus []string `json:"closed_status,omitempty" yaml:"closed_status,omitempty"`
	Timezone     string   `json:"timezone,omitempty" yaml:"timezone,omitempty"` // IANA name, default Local
	DateLayouts  []string `json:"date_layouts,omitempty" yaml:"date_layouts,omitempty"`
}

// Location resolves Timezone. Empty or "Local" is time.Local.
func (c ColumnsConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PortfolioConfig contains the capital baseline for the equity curve
type PortfolioConfig struct {
	StartCapital float64 `json:"start_capital" yaml:"start_capital"`
	Currency     string  `json:"currency" yaml:"currency"`
}

// ExportConfig contains the snapshot side channel parameters
type ExportConfig struct {
	Type string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig contains HTTP dashboard parameters
type ServerConfig struct {
	Addr       string  `json:"addr" yaml:"addr"`
	SessionTTL string  `json:"session_ttl" yaml:"session_ttl"`
	RateLimit  float64 `json:"rate_limit" yaml:"rate_limit"` // requests per second
	Burst      int     `json:"burst" yaml:"burst"`
}

// SessionDuration parses SessionTTL.
func (s ServerConfig) SessionDuration() (time.Duration, error) {
	return time.ParseDuration(s.SessionTTL)
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
// and then applies the environment.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadEnvFiles loads .env style files into the process environment. Missing
// files are ignored; variables already set win.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv copies secrets and overrides from the environment.
func (c *Config) ApplyEnv() {
	c.Passphrase = os.Getenv(EnvPassphrase)
	c.SessionSecret = os.Getenv(EnvSessionSecret)
	if c.Source.CredentialsFile == "" {
		c.Source.CredentialsFile = os.Getenv(EnvCredentials)
	}
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	// Determine format by extension
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Source.Type {
	case "sheets":
		if c.Source.SpreadsheetID == "" {
			return fmt.Errorf("source.spreadsheet_id is required for sheets")
		}
		if c.Source.Range == "" {
			return fmt.Errorf("source.range is required for sheets")
		}
	case "xlsx", "csv":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for %s", c.Source.Type)
		}
	default:
		return fmt.Errorf("source.type must be 'sheets', 'xlsx' or 'csv'")
	}
	if _, err := c.Source.TTL(); err != nil {
		return fmt.Errorf("source.cache_ttl: %w", err)
	}
	if _, err := c.Columns.Location(); err != nil {
		return fmt.Errorf("columns.timezone: %w", err)
	}
	if c.Portfolio.StartCapital < 0 {
		return fmt.Errorf("portfolio.start_capital must not be negative")
	}
	switch c.Export.Type {
	case "none", "":
	case "csv", "sqlite":
		if c.Export.Path == "" {
			return fmt.Errorf("export.path required for %s export", c.Export.Type)
		}
	default:
		return fmt.Errorf("export.type must be 'csv', 'sqlite' or 'none'")
	}
	if _, err := c.Server.SessionDuration(); err != nil {
		return fmt.Errorf("server.session_ttl: %w", err)
	}
	if c.Server.RateLimit < 0 || c.Server.Burst < 0 {
		return fmt.Errorf("server rate_limit and burst must not be negative")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Type:     "csv",
			Path:     "./trades.csv",
			CacheTTL: "5m",
		},
		Columns: ColumnsConfig{
			Fees:         "FEES",
			ClosedStatus: []string{"CLOSED", "FECHADO"},
			Timezone:     "Local",
		},
		Portfolio: PortfolioConfig{
			StartCapital: 1000,
			Currency:     "USD",
		},
		Export: ExportConfig{
			Type: "csv",
			Path: "./tradeboard_snapshot.csv",
		},
		Server: ServerConfig{
			Addr:       ":8080",
			SessionTTL: "12h",
			RateLimit:  10,
			Burst:      30,
		},
		LogLevel: "info",
	}
}
