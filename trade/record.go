// Package trade normalizes raw spreadsheet rows into canonical closed-trade
// records.
package trade

import (
	"time"

	"github.com/rustyeddy/tradeboard/market"
)

// DayLayout formats the calendar-day bucket of a record.
const DayLayout = "2006-01-02"

// Leg is one partial exit of a position.
type Leg struct {
	PnL           float64
	PnLPct        float64
	AllocationPct float64 // share of the position closed by this leg, 0-100
	ExitTime      time.Time
	Exited        bool
}

// Record is one closed round trip. Records are values; nothing downstream
// modifies them.
type Record struct {
	Row int // sheet row, header is row 1

	EntryTime     time.Time
	Instrument    string
	Side          market.Side
	Status        string
	EntryPrice    float64
	EntryQuantity float64
	EntryCapital  float64

	Legs [3]Leg

	LastExit time.Time
	Fees     float64 // cost magnitude, always >= 0
	TotalPnL float64
	TotalPct float64
	Day      string
}

// Holding is the time between entry and the last exit.
func (r Record) Holding() time.Duration {
	return r.LastExit.Sub(r.EntryTime)
}

// Outcome labels a record for gain/loss colouring. Break-even counts as a gain.
type Outcome string

const (
	Gain Outcome = "gain"
	Loss Outcome = "loss"
)

func (r Record) Outcome() Outcome {
	if r.TotalPnL >= 0 {
		return Gain
	}
	return Loss
}

// blend returns the summed P&L, the allocation-weighted return and the
// latest exit of legs. ok is false when no leg exited.
func blend(legs [3]Leg) (pnl, pct float64, last time.Time, ok bool) {
	for _, l := range legs {
		pnl += l.PnL
		pct += l.PnLPct * l.AllocationPct / 100
		if !l.Exited {
			continue
		}
		if !ok || l.ExitTime.After(last) {
			last = l.ExitTime
		}
		ok = true
	}
	return pnl, pct, last, ok
}
