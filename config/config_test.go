package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "./trades.csv", cfg.Source.ID())

	ttl, err := cfg.Source.TTL()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, ttl)
}

func TestSaveAndLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tradeboard.yaml")

	cfg := Default()
	cfg.Source = SourceConfig{Type: "sheets", SpreadsheetID: "abc123", Range: "CONTROLE!A1:T"}
	cfg.Portfolio.StartCapital = 2500
	cfg.Passphrase = "never-on-disk"
	require.NoError(t, cfg.SaveToFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "never-on-disk")

	t.Setenv(EnvPassphrase, "from-env")
	t.Setenv(EnvCredentials, "/tmp/key.json")

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", loaded.Source.ID())
	assert.InDelta(t, 2500.0, loaded.Portfolio.StartCapital, 1e-9)
	assert.Equal(t, "from-env", loaded.Passphrase)
	assert.Equal(t, "/tmp/key.json", loaded.Source.CredentialsFile)
	assert.Equal(t, []string{"CLOSED", "FECHADO"}, loaded.Columns.ClosedStatus)
}

func TestLoadJSONFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, Default().SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", loaded.Source.Type)
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(EnvSessionSecret+"=s3cret\n"), 0600))

	t.Setenv(EnvSessionSecret, "")
	require.NoError(t, os.Unsetenv(EnvSessionSecret))
	require.NoError(t, LoadEnvFiles(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "s3cret", os.Getenv(EnvSessionSecret))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"unknown source", func(c *Config) { c.Source.Type = "ftp" }, "source.type"},
		{"sheets without id", func(c *Config) { c.Source = SourceConfig{Type: "sheets", Range: "A1:T"} }, "spreadsheet_id"},
		{"sheets without range", func(c *Config) { c.Source = SourceConfig{Type: "sheets", SpreadsheetID: "x"} }, "source.range"},
		{"xlsx without path", func(c *Config) { c.Source = SourceConfig{Type: "xlsx"} }, "source.path"},
		{"bad ttl", func(c *Config) { c.Source.CacheTTL = "soon" }, "cache_ttl"},
		{"bad timezone", func(c *Config) { c.Columns.Timezone = "Mars/Olympus" }, "timezone"},
		{"negative capital", func(c *Config) { c.Portfolio.StartCapital = -1 }, "start_capital"},
		{"bad export", func(c *Config) { c.Export.Type = "parquet" }, "export.type"},
		{"export without path", func(c *Config) { c.Export = ExportConfig{Type: "sqlite"} }, "export.path"},
		{"bad session ttl", func(c *Config) { c.Server.SessionTTL = "" }, "session_ttl"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	noExport := Default()
	noExport.Export = ExportConfig{Type: "none"}
	assert.NoError(t, noExport.Validate())
}
