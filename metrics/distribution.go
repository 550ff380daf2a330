package metrics

import (
	"cmp"
	"math"
	"slices"

	"github.com/rustyeddy/tradeboard/trade"
)

// Bin is one bucket of the P&L histogram, split by outcome.
type Bin struct {
	Low    float64
	High   float64
	Gains  int
	Losses int
}

func (b Bin) Count() int {
	return b.Gains + b.Losses
}

// Histogram buckets TotalPnL into bins of equal width between the smallest
// and largest value. It returns nil for no records or bins < 1.
func Histogram(records []trade.Record, bins int) []Bin {
	if len(records) == 0 || bins < 1 {
		return nil
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range records {
		lo = math.Min(lo, r.TotalPnL)
		hi = math.Max(hi, r.TotalPnL)
	}
	if lo == hi {
		bins = 1
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = lo + float64(i)*width
		out[i].High = lo + float64(i+1)*width
	}
	out[bins-1].High = hi

	for _, r := range records {
		i := 0
		if width > 0 {
			i = int((r.TotalPnL - lo) / width)
		}
		if i >= bins {
			i = bins - 1
		}
		if r.Outcome() == trade.Gain {
			out[i].Gains++
		} else {
			out[i].Losses++
		}
	}
	return out
}

// InstrumentTotal is the cumulative result of one instrument.
type InstrumentTotal struct {
	Instrument string
	PnL        float64
	AbsPnL     float64 // sum of |TotalPnL|, the size of the instrument's tile
	Trades     int
}

// ByInstrument totals P&L per instrument, best first. Equal totals keep the
// order in which the instruments first appear in records.
func ByInstrument(records []trade.Record) []InstrumentTotal {
	idx := make(map[string]int)
	var out []InstrumentTotal
	for _, r := range records {
		i, ok := idx[r.Instrument]
		if !ok {
			i = len(out)
			idx[r.Instrument] = i
			out = append(out, InstrumentTotal{Instrument: r.Instrument})
		}
		out[i].PnL += r.TotalPnL
		out[i].AbsPnL += math.Abs(r.TotalPnL)
		out[i].Trades++
	}

	slices.SortStableFunc(out, func(a, b InstrumentTotal) int {
		return cmp.Compare(b.PnL, a.PnL)
	})
	return out
}
