// Package insights picks single-record highlights out of a set of closed
// trades. Records must be sorted by entry time; on ties the earliest wins.
// Empty inputs yield nil highlights rather than errors.
package insights

import (
	"time"

	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/trade"
)

// Frequency is how often an instrument was traded.
type Frequency struct {
	Instrument string
	Count      int
}

// Held is a record with its holding time.
type Held struct {
	Record   trade.Record
	Duration time.Duration
}

// SideExtremes are the best and worst trades of one side.
type SideExtremes struct {
	Side  market.Side
	Best  trade.Record
	Worst trade.Record
}

// Insights holds every highlight. Nil fields had no data.
type Insights struct {
	MostFrequent *Frequency

	BestPnL     *trade.Record
	WorstPnL    *trade.Record
	BestReturn  *trade.Record
	WorstReturn *trade.Record

	Longest *Held

	Long  *SideExtremes
	Short *SideExtremes

	Ranking         []metrics.InstrumentTotal
	BestInstrument  *metrics.InstrumentTotal
	WorstInstrument *metrics.InstrumentTotal
}

// Extract computes all highlights for records.
func Extract(records []trade.Record) Insights {
	in := Insights{
		MostFrequent: MostFrequent(records),
		BestPnL:      MaxBy(records, pnl),
		WorstPnL:     MinBy(records, pnl),
		BestReturn:   MaxBy(records, pct),
		WorstReturn:  MinBy(records, pct),
		Longest:      Longest(records),
		Long:         BySide(records, market.Long),
		Short:        BySide(records, market.Short),
		Ranking:      metrics.ByInstrument(records),
	}
	if len(in.Ranking) > 0 {
		best := in.Ranking[0]
		in.BestInstrument = &best
		in.WorstInstrument = worstInstrument(in.Ranking)
	}
	return in
}

// worstInstrument is the lowest total in ranking. Ranking keeps first-seen
// order among equal totals, so the strict comparison keeps the earliest.
func worstInstrument(ranking []metrics.InstrumentTotal) *metrics.InstrumentTotal {
	worst := ranking[0]
	for _, it := range ranking[1:] {
		if it.PnL < worst.PnL {
			worst = it
		}
	}
	return &worst
}

func pnl(r trade.Record) float64 { return r.TotalPnL }
func pct(r trade.Record) float64 { return r.TotalPct }

// MaxBy returns a copy of the first record with the largest key.
func MaxBy(records []trade.Record, key func(trade.Record) float64) *trade.Record {
	return pick(records, key, func(a, b float64) bool { return a > b })
}

// MinBy returns a copy of the first record with the smallest key.
func MinBy(records []trade.Record, key func(trade.Record) float64) *trade.Record {
	return pick(records, key, func(a, b float64) bool { return a < b })
}

func pick(records []trade.Record, key func(trade.Record) float64, better func(a, b float64) bool) *trade.Record {
	if len(records) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(records); i++ {
		if better(key(records[i]), key(records[best])) {
			best = i
		}
	}
	r := records[best]
	return &r
}

// MostFrequent is the mode of the instrument column. Equal counts go to the
// instrument that appeared first.
func MostFrequent(records []trade.Record) *Frequency {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		if counts[r.Instrument] == 0 {
			order = append(order, r.Instrument)
		}
		counts[r.Instrument]++
	}

	var f *Frequency
	for _, in := range order {
		if f == nil || counts[in] > f.Count {
			f = &Frequency{Instrument: in, Count: counts[in]}
		}
	}
	return f
}

// Longest is the record held the longest between entry and last exit.
func Longest(records []trade.Record) *Held {
	r := MaxBy(records, func(r trade.Record) float64 { return float64(r.Holding()) })
	if r == nil {
		return nil
	}
	return &Held{Record: *r, Duration: r.Holding()}
}

// BySide returns the best and worst trade by P&L for side, or nil when the
// side was never traded.
func BySide(records []trade.Record, side market.Side) *SideExtremes {
	subset := trade.Filter{Side: side}.Apply(records)
	best, worst := MaxBy(subset, pnl), MinBy(subset, pnl)
	if best == nil {
		return nil
	}
	return &SideExtremes{Side: side, Best: *best, Worst: *worst}
}
