// Package metrics derives portfolio figures from closed-trade records. Every
// function is a pure reduction over its input.
package metrics

import (
	"math"

	"github.com/rustyeddy/tradeboard/trade"
)

// TotalGain sums the P&L of winning trades.
func TotalGain(records []trade.Record) float64 {
	var sum float64
	for _, r := range records {
		if r.TotalPnL > 0 {
			sum += r.TotalPnL
		}
	}
	return sum
}

// TotalLoss sums the P&L of losing trades. The result is <= 0.
func TotalLoss(records []trade.Record) float64 {
	var sum float64
	for _, r := range records {
		if r.TotalPnL < 0 {
			sum += r.TotalPnL
		}
	}
	return sum
}

// TotalFees is the fee cost as a positive magnitude.
func TotalFees(records []trade.Record) float64 {
	var sum float64
	for _, r := range records {
		sum += math.Abs(r.Fees)
	}
	return sum
}

// NetDelta is gains plus losses minus fees.
func NetDelta(records []trade.Record) float64 {
	return TotalGain(records) + TotalLoss(records) - TotalFees(records)
}

func TradeCount(records []trade.Record) int {
	return len(records)
}

// WinningTradeCount counts trades with positive P&L. Break-even trades are
// neither wins nor losses.
func WinningTradeCount(records []trade.Record) int {
	n := 0
	for _, r := range records {
		if r.TotalPnL > 0 {
			n++
		}
	}
	return n
}

func LosingTradeCount(records []trade.Record) int {
	n := 0
	for _, r := range records {
		if r.TotalPnL < 0 {
			n++
		}
	}
	return n
}

// HitRatio is the percentage of winning trades. ok is false without trades.
func HitRatio(records []trade.Record) (float64, bool) {
	n := TradeCount(records)
	if n == 0 {
		return 0, false
	}
	return float64(WinningTradeCount(records)) / float64(n) * 100, true
}

// AverageGain is the mean P&L of winning trades. ok is false without wins.
func AverageGain(records []trade.Record) (float64, bool) {
	n := WinningTradeCount(records)
	if n == 0 {
		return 0, false
	}
	return TotalGain(records) / float64(n), true
}

// AverageLoss is the mean P&L of losing trades. ok is false without losses.
func AverageLoss(records []trade.Record) (float64, bool) {
	n := LosingTradeCount(records)
	if n == 0 {
		return 0, false
	}
	return TotalLoss(records) / float64(n), true
}
