// Package journal writes snapshots of normalized trades to side channels
// (CSV or SQLite) and renders records as org-mode journal entries.
package journal

import (
	"context"
	"fmt"

	"github.com/rustyeddy/tradeboard/config"
	"github.com/rustyeddy/tradeboard/trade"
)

// Exporter stores one snapshot of the normalized records per call and
// returns the snapshot id. Snapshots are write-only; the pipeline never reads
// them back.
type Exporter interface {
	Export(ctx context.Context, records []trade.Record) (string, error)
	Close() error
}

// Nop discards every snapshot.
type Nop struct{}

func (Nop) Export(context.Context, []trade.Record) (string, error) { return "", nil }
func (Nop) Close() error                                          { return nil }

// New opens the exporter described by cfg.
func New(cfg config.ExportConfig) (Exporter, error) {
	switch cfg.Type {
	case "", "none":
		return Nop{}, nil
	case "csv":
		return NewCSV(cfg.Path), nil
	case "sqlite":
		return NewSQLite(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown export type %q", cfg.Type)
	}
}
