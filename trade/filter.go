package trade

import (
	"slices"

	"github.com/rustyeddy/tradeboard/market"
)

// Filter selects records by instrument and side. Zero fields match everything.
type Filter struct {
	Instruments []string
	Side        market.Side
}

// Apply returns a new slice with the matching records, order preserved.
func (f Filter) Apply(records []Record) []Record {
	want := make(map[string]bool, len(f.Instruments))
	for _, in := range f.Instruments {
		want[market.Instrument(in)] = true
	}

	out := make([]Record, 0, len(records))
	for _, r := range records {
		if len(want) > 0 && !want[r.Instrument] {
			continue
		}
		if f.Side != "" && r.Side != f.Side {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Instruments lists the distinct instruments in first-seen order.
func Instruments(records []Record) []string {
	var out []string
	for _, r := range records {
		if !slices.Contains(out, r.Instrument) {
			out = append(out, r.Instrument)
		}
	}
	return out
}

// Sides lists the distinct sides in first-seen order.
func Sides(records []Record) []market.Side {
	var out []market.Side
	for _, r := range records {
		if !slices.Contains(out, r.Side) {
			out = append(out, r.Side)
		}
	}
	return out
}
