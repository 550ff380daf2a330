// Package board runs the dashboard pipeline once: fetch the sheet, normalize
// it, write the export snapshot and compute every view from the records.
package board

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/tradeboard/config"
	"github.com/rustyeddy/tradeboard/insights"
	"github.com/rustyeddy/tradeboard/journal"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/source"
	"github.com/rustyeddy/tradeboard/trade"
	"go.uber.org/zap"
)

// DefaultBins is the number of histogram bins on the dashboard.
const DefaultBins = 40

// View is one fresh projection of the journal. Nothing in it is shared with
// a later View.
type View struct {
	Loaded     time.Time
	SnapshotID string

	// Instruments lists every instrument before filtering, for pickers.
	Instruments []string
	Filter      trade.Filter

	Records   []trade.Record
	Summary   metrics.Summary
	Daily     []metrics.DayValue
	Equity    []metrics.DayValue
	Histogram []metrics.Bin
	Insights  insights.Insights
}

// NewView aggregates records, already normalized and sorted, after applying
// filter.
func NewView(records []trade.Record, filter trade.Filter, startCapital float64, bins int) *View {
	if bins < 1 {
		bins = DefaultBins
	}
	selected := filter.Apply(records)
	return &View{
		Loaded:      time.Now(),
		Instruments: trade.Instruments(records),
		Filter:      filter,
		Records:     selected,
		Summary:     metrics.Summarize(selected, startCapital),
		Daily:       metrics.DailyNet(selected),
		Equity:      metrics.EquityCurve(selected, startCapital),
		Histogram:   metrics.Histogram(selected, bins),
		Insights:    insights.Extract(selected),
	}
}

// Pipeline holds what a Build needs. It keeps no state between builds.
type Pipeline struct {
	fetcher  source.Fetcher
	exporter journal.Exporter
	log      *zap.Logger

	id, rng      string
	opts         trade.Options
	startCapital float64
	bins         int
}

// TradeOptions maps the columns section of the config onto normalizer
// options.
func TradeOptions(c config.ColumnsConfig) (trade.Options, error) {
	loc, err := c.Location()
	if err != nil {
		return trade.Options{}, fmt.Errorf("timezone: %w", err)
	}
	return trade.Options{
		FeeColumn:    c.Fees,
		ClosedStatus: c.ClosedStatus,
		Location:     loc,
		DateLayouts:  c.DateLayouts,
	}, nil
}

// New builds a pipeline. A nil exporter discards snapshots and a nil log is
// silent.
func New(f source.Fetcher, exp journal.Exporter, cfg *config.Config, log *zap.Logger) (*Pipeline, error) {
	opts, err := TradeOptions(cfg.Columns)
	if err != nil {
		return nil, err
	}
	if exp == nil {
		exp = journal.Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		fetcher:      f,
		exporter:     exp,
		log:          log,
		id:           cfg.Source.ID(),
		rng:          cfg.Source.Range,
		opts:         opts,
		startCapital: cfg.Portfolio.StartCapital,
		bins:         DefaultBins,
	}, nil
}

// Load fetches and normalizes the sheet and exports the snapshot. It returns
// the records and the snapshot id ("" when nothing was exported).
//
// A fetch or integrity error aborts the load. An export error is logged and
// ignored since the snapshot is never read back.
func (p *Pipeline) Load(ctx context.Context) ([]trade.Record, string, error) {
	began := time.Now()

	grid, err := p.fetcher.Fetch(ctx, p.id, p.rng)
	if err != nil {
		p.log.Error("fetch failed", zap.String("id", p.id), zap.String("range", p.rng), zap.Error(err))
		return nil, "", err
	}
	p.log.Debug("fetched", zap.Int("rows", len(grid)), zap.Duration("took", time.Since(began)))

	records, err := trade.Normalize(grid, p.opts)
	if err != nil {
		p.log.Error("normalize failed", zap.Error(err))
		return nil, "", fmt.Errorf("normalize: %w", err)
	}
	p.log.Info("normalized", zap.Int("rows", len(grid.Rows())), zap.Int("records", len(records)))

	snap, err := p.exporter.Export(ctx, records)
	if err != nil {
		p.log.Warn("export snapshot failed", zap.Error(err))
		snap = ""
	} else if snap != "" {
		p.log.Debug("exported snapshot", zap.String("snapshot", snap))
	}
	return records, snap, nil
}

// Build runs Load and aggregates the records selected by filter.
func (p *Pipeline) Build(ctx context.Context, filter trade.Filter) (*View, error) {
	records, snap, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	v := NewView(records, filter, p.startCapital, p.bins)
	v.SnapshotID = snap
	p.log.Info("built view",
		zap.Int("records", len(v.Records)),
		zap.Float64("net_delta", v.Summary.NetDelta),
		zap.Strings("instruments", filter.Instruments),
		zap.String("side", string(filter.Side)))
	return v, nil
}

// Source names where the pipeline reads from, for display.
func (p *Pipeline) Source() string {
	if p.rng == "" {
		return p.id
	}
	return p.id + " " + p.rng
}
