package source

import (
	"context"
	"fmt"
	"os"

	"github.com/rustyeddy/tradeboard/config"
)

// New builds the fetcher described by cfg, wrapped in a cache when
// cfg.CacheTTL is set.
func New(ctx context.Context, cfg config.SourceConfig) (Fetcher, error) {
	var f Fetcher
	switch cfg.Type {
	case "sheets":
		if cfg.CredentialsFile == "" {
			return nil, fmt.Errorf("sheets source needs credentials_file or %s", config.EnvCredentials)
		}
		key, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		s, err := SheetsFromServiceAccount(ctx, key)
		if err != nil {
			return nil, err
		}
		f = s
	case "xlsx":
		f = XLSX{}
	case "csv":
		f = CSV{}
	default:
		return nil, fmt.Errorf("unknown source type %q", cfg.Type)
	}

	ttl, err := cfg.TTL()
	if err != nil {
		return nil, fmt.Errorf("cache ttl: %w", err)
	}
	if ttl > 0 {
		f = NewCached(f, ttl)
	}
	return f, nil
}
