package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/tradeboard/pkg/id"
	"github.com/rustyeddy/tradeboard/trade"
)

// SQLiteExporter appends every snapshot to a database, keyed by a ULID
// snapshot id. Older snapshots are kept. Exports are serialized over a
// single connection so concurrent callers never hit a locked database.
type SQLiteExporter struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteExporter{db: db}, nil
}

func (e *SQLiteExporter) Export(ctx context.Context, records []trade.Record) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := id.New()

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (snapshot_id, created, records) VALUES (?, ?, ?)`,
		snap, time.Now().UTC(), len(records),
	); err != nil {
		return "", fmt.Errorf("insert snapshot: %w", err)
	}

	tradeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO trades
		(snapshot_id, sheet_row, entry_time, instrument, side, status, entry_price, entry_quantity,
		 entry_capital, last_exit, fees, total_pnl, total_pct, day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer tradeStmt.Close()

	legStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO legs
		(snapshot_id, sheet_row, leg, pnl, pnl_pct, allocation_pct, exit_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer legStmt.Close()

	for _, r := range records {
		if _, err := tradeStmt.ExecContext(ctx,
			snap, r.Row, r.EntryTime.UTC(), r.Instrument, string(r.Side), r.Status,
			r.EntryPrice, r.EntryQuantity, r.EntryCapital, r.LastExit.UTC(),
			r.Fees, r.TotalPnL, r.TotalPct, r.Day,
		); err != nil {
			return "", fmt.Errorf("insert row %d: %w", r.Row, err)
		}
		for i, l := range r.Legs {
			var exit any
			if l.Exited {
				exit = l.ExitTime.UTC()
			}
			if _, err := legStmt.ExecContext(ctx,
				snap, r.Row, i+1, l.PnL, l.PnLPct, l.AllocationPct, exit,
			); err != nil {
				return "", fmt.Errorf("insert row %d leg %d: %w", r.Row, i+1, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return snap, nil
}

func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}
