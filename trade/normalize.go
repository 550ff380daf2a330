package trade

import (
	"errors"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/sheet"
)

// Options controls how a grid is read.
type Options struct {
	FeeColumn    string
	ClosedStatus []string
	Location     *time.Location
	DateLayouts  []string
}

// DefaultOptions reads FEES, treats CLOSED/FECHADO as closed and buckets days
// in time.Local.
func DefaultOptions() Options {
	return Options{
		FeeColumn:    market.ColFees,
		ClosedStatus: market.DefaultClosedStatus,
		Location:     time.Local,
		DateLayouts:  sheet.DefaultLayouts,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.FeeColumn == "" {
		o.FeeColumn = d.FeeColumn
	}
	if len(o.ClosedStatus) == 0 {
		o.ClosedStatus = d.ClosedStatus
	}
	if o.Location == nil {
		o.Location = d.Location
	}
	if len(o.DateLayouts) == 0 {
		o.DateLayouts = d.DateLayouts
	}
	return o
}

// Normalize converts the grid into closed-trade records sorted by entry time.
// Rows without an entry time or not closed are dropped. Any other bad cell
// aborts the whole load with an *IntegrityError.
func Normalize(grid sheet.Grid, opts Options) ([]Record, error) {
	opts = opts.withDefaults()

	h, err := grid.Header()
	if err != nil {
		return nil, err
	}
	if col, missing := h.Missing(market.RequiredColumns(opts.FeeColumn)...); missing {
		return nil, &IntegrityError{Row: 1, Column: col, Err: ErrMissingColumn}
	}

	p := rowParser{h: h, opts: opts}
	var out []Record
	for i, row := range grid.Rows() {
		p.row = i + 2
		p.cells = row
		if !p.keep() {
			continue
		}
		rec, err := p.record()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	slices.SortStableFunc(out, func(a, b Record) int {
		return a.EntryTime.Compare(b.EntryTime)
	})
	return out, nil
}

type rowParser struct {
	h     sheet.Header
	opts  Options
	row   int
	cells []string
}

func (p *rowParser) cell(col string) string {
	return p.h.Cell(p.cells, col)
}

func (p *rowParser) keep() bool {
	if p.cell(market.ColEntryTime) == "" {
		return false
	}
	status := p.cell(market.ColStatus)
	for _, s := range p.opts.ClosedStatus {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}

func (p *rowParser) fail(col string, err error) error {
	return &IntegrityError{Row: p.row, Column: col, Value: p.cell(col), Err: err}
}

// number parses col with parse; blank cells are zero when zeroIfBlank.
func (p *rowParser) number(col string, parse func(string) (float64, error), zeroIfBlank bool) (float64, error) {
	v, err := parse(p.cell(col))
	if errors.Is(err, sheet.ErrEmpty) && zeroIfBlank {
		return 0, nil
	}
	if err != nil {
		return 0, p.fail(col, err)
	}
	return v, nil
}

func (p *rowParser) leg(cols market.LegColumns) (Leg, error) {
	var (
		l   Leg
		err error
	)
	// a leg that never fired has blank cells; those are zero, not missing
	if l.PnL, err = p.number(cols.PnL, sheet.ParseMoney, true); err != nil {
		return Leg{}, err
	}
	if l.PnLPct, err = p.number(cols.PnLPct, sheet.ParsePercent, true); err != nil {
		return Leg{}, err
	}
	if l.AllocationPct, err = p.number(cols.Allocation, sheet.ParsePercent, true); err != nil {
		return Leg{}, err
	}
	if raw := p.cell(cols.Date); raw != "" {
		t, err := sheet.ParseTime(raw, p.opts.Location, p.opts.DateLayouts)
		if err != nil {
			return Leg{}, p.fail(cols.Date, err)
		}
		l.ExitTime = t
		l.Exited = true
	}
	return l, nil
}

func (p *rowParser) record() (Record, error) {
	entry, err := sheet.ParseTime(p.cell(market.ColEntryTime), p.opts.Location, p.opts.DateLayouts)
	if err != nil {
		return Record{}, p.fail(market.ColEntryTime, err)
	}

	rec := Record{
		Row:        p.row,
		EntryTime:  entry,
		Instrument: market.Instrument(p.cell(market.ColCoin)),
		Side:       market.ParseSide(p.cell(market.ColSide)),
		Status:     strings.ToUpper(p.cell(market.ColStatus)),
		Day:        entry.In(p.opts.Location).Format(DayLayout),
	}

	if rec.EntryPrice, err = p.number(market.ColEntryPrice, sheet.ParseMoney, true); err != nil {
		return Record{}, err
	}
	if rec.EntryQuantity, err = p.number(market.ColEntryQuantity, sheet.ParseMoney, true); err != nil {
		return Record{}, err
	}
	if rec.EntryCapital, err = p.number(market.ColEntryCapital, sheet.ParseMoney, true); err != nil {
		return Record{}, err
	}

	for i, cols := range market.Legs {
		if rec.Legs[i], err = p.leg(cols); err != nil {
			return Record{}, err
		}
	}

	fees, err := p.number(p.opts.FeeColumn, sheet.ParseMoney, true)
	if err != nil {
		return Record{}, err
	}
	rec.Fees = math.Abs(fees)

	var ok bool
	rec.TotalPnL, rec.TotalPct, rec.LastExit, ok = blend(rec.Legs)
	if !ok {
		dates := make([]string, len(market.Legs))
		for i, l := range market.Legs {
			dates[i] = l.Date
		}
		return Record{}, &IntegrityError{Row: p.row, Column: strings.Join(dates, ", "), Err: ErrNoExit}
	}
	return rec, nil
}
