package metrics

import (
	"sort"
	"time"

	"github.com/rustyeddy/tradeboard/trade"
)

// DayValue is one point of a per-day series.
type DayValue struct {
	Day   string    // trade.DayLayout
	Date  time.Time // Day at UTC midnight, for plotting
	Value float64
}

// DailyNet sums trade P&L per entry day, oldest day first.
func DailyNet(records []trade.Record) []DayValue {
	sums := make(map[string]float64)
	for _, r := range records {
		sums[r.Day] += r.TotalPnL
	}

	days := make([]string, 0, len(sums))
	for d := range sums {
		days = append(days, d)
	}
	sort.Strings(days)

	out := make([]DayValue, len(days))
	for i, d := range days {
		date, _ := time.Parse(trade.DayLayout, d)
		out[i] = DayValue{Day: d, Date: date, Value: sums[d]}
	}
	return out
}

// EquityCurve is start plus the running sum of DailyNet.
func EquityCurve(records []trade.Record, start float64) []DayValue {
	daily := DailyNet(records)
	equity := start
	for i := range daily {
		equity += daily[i].Value
		daily[i].Value = equity
	}
	return daily
}

// MaxDrawdown is the largest peak-to-trough drop of curve in percent of the
// peak, with start as the initial peak. ok is false when there is no
// positive peak to measure from.
func MaxDrawdown(curve []DayValue, start float64) (float64, bool) {
	if len(curve) == 0 {
		return 0, false
	}
	peak := start
	var worst float64
	for _, p := range curve {
		if p.Value > peak {
			peak = p.Value
		}
		if peak <= 0 {
			continue
		}
		if dd := (peak - p.Value) / peak * 100; dd > worst {
			worst = dd
		}
	}
	if peak <= 0 {
		return 0, false
	}
	return worst, true
}
