package metrics

import "github.com/rustyeddy/tradeboard/trade"

// Optional is a figure that may be undefined, e.g. a ratio over an empty set.
type Optional struct {
	Value float64
	OK    bool
}

func optional(v float64, ok bool) Optional {
	return Optional{Value: v, OK: ok}
}

// Summary collects the headline figures shown on the indicators panel.
type Summary struct {
	StartCapital float64
	CurrentValue float64

	TotalGain float64
	TotalLoss float64
	TotalFees float64
	NetDelta  float64

	Trades int
	Wins   int
	Losses int

	HitRatio    Optional
	AverageGain Optional
	AverageLoss Optional
	ReturnPct   Optional
	MaxDDPct    Optional
}

// Summarize computes every scalar for records against a starting capital.
func Summarize(records []trade.Record, startCapital float64) Summary {
	s := Summary{
		StartCapital: startCapital,
		TotalGain:    TotalGain(records),
		TotalLoss:    TotalLoss(records),
		TotalFees:    TotalFees(records),
		NetDelta:     NetDelta(records),
		Trades:       TradeCount(records),
		Wins:         WinningTradeCount(records),
		Losses:       LosingTradeCount(records),
	}
	s.CurrentValue = startCapital + s.NetDelta
	s.HitRatio = optional(HitRatio(records))
	s.AverageGain = optional(AverageGain(records))
	s.AverageLoss = optional(AverageLoss(records))
	if startCapital != 0 {
		s.ReturnPct = Optional{Value: s.NetDelta / startCapital * 100, OK: true}
	}
	s.MaxDDPct = optional(MaxDrawdown(EquityCurve(records, startCapital), startCapital))
	return s
}
