package server

import (
	"time"

	"github.com/rustyeddy/tradeboard/insights"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/trade"
)

// optional is null in JSON when the figure is undefined.
func optional(o metrics.Optional) *float64 {
	if !o.OK {
		return nil
	}
	v := o.Value
	return &v
}

type summaryJSON struct {
	StartCapital float64  `json:"start_capital"`
	CurrentValue float64  `json:"current_value"`
	TotalGain    float64  `json:"total_gain"`
	TotalLoss    float64  `json:"total_loss"`
	TotalFees    float64  `json:"total_fees"`
	NetDelta     float64  `json:"net_delta"`
	Trades       int      `json:"trades"`
	Wins         int      `json:"wins"`
	Losses       int      `json:"losses"`
	HitRatio     *float64 `json:"hit_ratio"`
	AverageGain  *float64 `json:"average_gain"`
	AverageLoss  *float64 `json:"average_loss"`
	ReturnPct    *float64 `json:"return_pct"`
	MaxDDPct     *float64 `json:"max_drawdown_pct"`
}

func toSummary(s metrics.Summary) summaryJSON {
	return summaryJSON{
		StartCapital: s.StartCapital,
		CurrentValue: s.CurrentValue,
		TotalGain:    s.TotalGain,
		TotalLoss:    s.TotalLoss,
		TotalFees:    s.TotalFees,
		NetDelta:     s.NetDelta,
		Trades:       s.Trades,
		Wins:         s.Wins,
		Losses:       s.Losses,
		HitRatio:     optional(s.HitRatio),
		AverageGain:  optional(s.AverageGain),
		AverageLoss:  optional(s.AverageLoss),
		ReturnPct:    optional(s.ReturnPct),
		MaxDDPct:     optional(s.MaxDDPct),
	}
}

type legJSON struct {
	PnL           float64    `json:"pnl"`
	PnLPct        float64    `json:"pnl_pct"`
	AllocationPct float64    `json:"allocation_pct"`
	ExitTime      *time.Time `json:"exit_time"`
}

type tradeJSON struct {
	Row           int       `json:"row"`
	EntryTime     time.Time `json:"entry_time"`
	Instrument    string    `json:"instrument"`
	Side          string    `json:"side"`
	EntryPrice    float64   `json:"entry_price"`
	EntryQuantity float64   `json:"entry_quantity"`
	EntryCapital  float64   `json:"entry_capital"`
	Legs          []legJSON `json:"legs"`
	LastExit      time.Time `json:"last_exit"`
	Fees          float64   `json:"fees"`
	TotalPnL      float64   `json:"total_pnl"`
	TotalPct      float64   `json:"total_pct"`
	Day           string    `json:"day"`
	HoldingHours  float64   `json:"holding_hours"`
}

func toTrade(r trade.Record) tradeJSON {
	legs := make([]legJSON, len(r.Legs))
	for i, l := range r.Legs {
		legs[i] = legJSON{PnL: l.PnL, PnLPct: l.PnLPct, AllocationPct: l.AllocationPct}
		if l.Exited {
			t := l.ExitTime
			legs[i].ExitTime = &t
		}
	}
	return tradeJSON{
		Row:           r.Row,
		EntryTime:     r.EntryTime,
		Instrument:    r.Instrument,
		Side:          string(r.Side),
		EntryPrice:    r.EntryPrice,
		EntryQuantity: r.EntryQuantity,
		EntryCapital:  r.EntryCapital,
		Legs:          legs,
		LastExit:      r.LastExit,
		Fees:          r.Fees,
		TotalPnL:      r.TotalPnL,
		TotalPct:      r.TotalPct,
		Day:           r.Day,
		HoldingHours:  r.Holding().Hours(),
	}
}

func toTrades(records []trade.Record) []tradeJSON {
	out := make([]tradeJSON, len(records))
	for i, r := range records {
		out[i] = toTrade(r)
	}
	return out
}

func toTradePtr(r *trade.Record) *tradeJSON {
	if r == nil {
		return nil
	}
	t := toTrade(*r)
	return &t
}

type pointJSON struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

func toPoints(series []metrics.DayValue) []pointJSON {
	out := make([]pointJSON, len(series))
	for i, p := range series {
		out[i] = pointJSON{Day: p.Day, Value: p.Value}
	}
	return out
}

type binJSON struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Gains  int     `json:"gains"`
	Losses int     `json:"losses"`
}

func toBins(bins []metrics.Bin) []binJSON {
	out := make([]binJSON, len(bins))
	for i, b := range bins {
		out[i] = binJSON{Low: b.Low, High: b.High, Gains: b.Gains, Losses: b.Losses}
	}
	return out
}

type instrumentJSON struct {
	Instrument string  `json:"instrument"`
	PnL        float64 `json:"pnl"`
	AbsPnL     float64 `json:"abs_pnl"`
	Trades     int     `json:"trades"`
}

func toInstrument(it *metrics.InstrumentTotal) *instrumentJSON {
	if it == nil {
		return nil
	}
	return &instrumentJSON{Instrument: it.Instrument, PnL: it.PnL, AbsPnL: it.AbsPnL, Trades: it.Trades}
}

type sideJSON struct {
	Best  tradeJSON `json:"best"`
	Worst tradeJSON `json:"worst"`
}

func toSide(se *insights.SideExtremes) *sideJSON {
	if se == nil {
		return nil
	}
	return &sideJSON{Best: toTrade(se.Best), Worst: toTrade(se.Worst)}
}

type frequencyJSON struct {
	Instrument string `json:"instrument"`
	Count      int    `json:"count"`
}

type insightsJSON struct {
	MostFrequent *frequencyJSON   `json:"most_frequent"`
	BestPnL      *tradeJSON       `json:"best_pnl"`
	WorstPnL     *tradeJSON       `json:"worst_pnl"`
	BestReturn   *tradeJSON       `json:"best_return"`
	WorstReturn  *tradeJSON       `json:"worst_return"`
	Longest      *tradeJSON       `json:"longest"`
	LongestHours *float64         `json:"longest_hours"`
	Long         *sideJSON        `json:"long"`
	Short        *sideJSON        `json:"short"`
	Ranking      []instrumentJSON `json:"ranking"`
	Best         *instrumentJSON  `json:"best_instrument"`
	Worst        *instrumentJSON  `json:"worst_instrument"`
}

func toInsights(in insights.Insights) insightsJSON {
	out := insightsJSON{
		BestPnL:     toTradePtr(in.BestPnL),
		WorstPnL:    toTradePtr(in.WorstPnL),
		BestReturn:  toTradePtr(in.BestReturn),
		WorstReturn: toTradePtr(in.WorstReturn),
		Long:        toSide(in.Long),
		Short:       toSide(in.Short),
		Best:        toInstrument(in.BestInstrument),
		Worst:       toInstrument(in.WorstInstrument),
		Ranking:     make([]instrumentJSON, len(in.Ranking)),
	}
	if in.MostFrequent != nil {
		out.MostFrequent = &frequencyJSON{Instrument: in.MostFrequent.Instrument, Count: in.MostFrequent.Count}
	}
	if in.Longest != nil {
		out.Longest = toTradePtr(&in.Longest.Record)
		h := in.Longest.Duration.Hours()
		out.LongestHours = &h
	}
	for i := range in.Ranking {
		out.Ranking[i] = *toInstrument(&in.Ranking[i])
	}
	return out
}
