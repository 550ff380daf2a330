package journal

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rustyeddy/tradeboard/pkg/id"
	"github.com/rustyeddy/tradeboard/trade"
)

// CSVHeader is the first line of every CSV snapshot.
var CSVHeader = []string{
	"snapshot_id", "row", "entry_time", "instrument", "side", "status",
	"entry_price", "entry_quantity", "entry_capital",
	"p1_pnl", "p1_pct", "p1_allocation", "p1_exit",
	"p2_pnl", "p2_pct", "p2_allocation", "p2_exit",
	"p3_pnl", "p3_pct", "p3_allocation", "p3_exit",
	"last_exit", "fees", "total_pnl", "total_pct", "day",
}

// CSVExporter rewrites a single file with the latest snapshot. Exports are
// serialized and each one replaces the file whole, so readers never see rows
// from two snapshots.
type CSVExporter struct {
	mu   sync.Mutex
	path string
}

func NewCSV(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

func (e *CSVExporter) Export(ctx context.Context, records []trade.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	file, err := os.CreateTemp(filepath.Dir(e.path), "."+filepath.Base(e.path)+"-*")
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	tmp := file.Name()
	defer os.Remove(tmp)
	defer file.Close()

	snap := id.New()
	w := csv.NewWriter(file)
	if err := w.Write(CSVHeader); err != nil {
		return "", err
	}
	for _, r := range records {
		if err := w.Write(csvRow(snap, r)); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return "", fmt.Errorf("replace snapshot: %w", err)
	}
	return snap, nil
}

func (e *CSVExporter) Close() error {
	return nil
}

func csvRow(snap string, r trade.Record) []string {
	row := []string{
		snap,
		strconv.Itoa(r.Row),
		ts(r.EntryTime),
		r.Instrument,
		string(r.Side),
		r.Status,
		f(r.EntryPrice),
		f(r.EntryQuantity),
		f(r.EntryCapital),
	}
	for _, l := range r.Legs {
		exit := ""
		if l.Exited {
			exit = ts(l.ExitTime)
		}
		row = append(row, f(l.PnL), f(l.PnLPct), f(l.AllocationPct), exit)
	}
	return append(row,
		ts(r.LastExit),
		f(r.Fees),
		f(r.TotalPnL),
		f(r.TotalPct),
		r.Day,
	)
}

func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
