// Package report renders dashboard views as text, PNG charts and org-mode
// documents.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/tradeboard/insights"
	"github.com/rustyeddy/tradeboard/metrics"
	"github.com/rustyeddy/tradeboard/trade"
)

const rule = "--------------------------------------------------"

func header(w io.Writer, title string) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintf(w, " %s\n", title)
	fmt.Fprintln(w, "==================================================")
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// opt formats an optional figure, "n/a" when undefined.
func opt(o metrics.Optional, format string) string {
	if !o.OK {
		return "n/a"
	}
	return fmt.Sprintf(format, o.Value)
}

// PrintSummary writes the indicators panel.
func PrintSummary(w io.Writer, s metrics.Summary) {
	header(w, "Trade Journal Summary")

	section(w, "Account")
	fmt.Fprintf(w, "Start Capital: %.2f\n", s.StartCapital)
	fmt.Fprintf(w, "Current Value: %.2f\n", s.CurrentValue)
	fmt.Fprintf(w, "Return:        %s\n", opt(s.ReturnPct, "%.2f%%"))
	fmt.Fprintf(w, "Max Drawdown:  %s\n", opt(s.MaxDDPct, "%.2f%%"))

	section(w, "Results")
	fmt.Fprintf(w, "Total Gain:    %.2f\n", s.TotalGain)
	fmt.Fprintf(w, "Total Loss:    %.2f\n", s.TotalLoss)
	fmt.Fprintf(w, "Total Fees:    %.2f\n", s.TotalFees)
	fmt.Fprintf(w, "Net Delta:     %.2f\n", s.NetDelta)

	section(w, "Trade Statistics")
	fmt.Fprintf(w, "Trades:        %d\n", s.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Losses)
	fmt.Fprintf(w, "Hit Ratio:     %s\n", opt(s.HitRatio, "%.2f%%"))
	fmt.Fprintf(w, "Average Gain:  %s\n", opt(s.AverageGain, "%.2f"))
	fmt.Fprintf(w, "Average Loss:  %s\n", opt(s.AverageLoss, "%.2f"))

	fmt.Fprintln(w)
}

func recordLine(r *trade.Record) string {
	if r == nil {
		return "n/a"
	}
	return fmt.Sprintf("%s %s %s  %.2f (%.2f%%)", r.Day, r.Instrument, r.Side, r.TotalPnL, r.TotalPct)
}

// PrintInsights writes the highlights panel. Missing highlights print as n/a.
func PrintInsights(w io.Writer, in insights.Insights) {
	header(w, "Trade Insights")

	section(w, "Highlights")
	if in.MostFrequent != nil {
		fmt.Fprintf(w, "Most Traded:   %s (%d trades)\n", in.MostFrequent.Instrument, in.MostFrequent.Count)
	} else {
		fmt.Fprintln(w, "Most Traded:   n/a")
	}
	fmt.Fprintf(w, "Best P&L:      %s\n", recordLine(in.BestPnL))
	fmt.Fprintf(w, "Worst P&L:     %s\n", recordLine(in.WorstPnL))
	fmt.Fprintf(w, "Best Return:   %s\n", recordLine(in.BestReturn))
	fmt.Fprintf(w, "Worst Return:  %s\n", recordLine(in.WorstReturn))
	if in.Longest != nil {
		fmt.Fprintf(w, "Longest Hold:  %s (%s)\n", recordLine(&in.Longest.Record), in.Longest.Duration.Round(time.Minute))
	} else {
		fmt.Fprintln(w, "Longest Hold:  n/a")
	}

	for _, se := range []*insights.SideExtremes{in.Long, in.Short} {
		if se == nil {
			continue
		}
		section(w, string(se.Side))
		fmt.Fprintf(w, "Best:          %s\n", recordLine(&se.Best))
		fmt.Fprintf(w, "Worst:         %s\n", recordLine(&se.Worst))
	}

	if len(in.Ranking) > 0 {
		section(w, "Instruments")
		for _, it := range in.Ranking {
			fmt.Fprintf(w, "%-12s %12.2f  %4d trades\n", it.Instrument, it.PnL, it.Trades)
		}
	}

	fmt.Fprintln(w)
}

// PrintDaily writes one line per day with its net and the running equity.
func PrintDaily(w io.Writer, daily, equity []metrics.DayValue) {
	header(w, "Daily Net")
	fmt.Fprintf(w, "%-12s %12s %14s\n", "Day", "Net", "Equity")
	fmt.Fprintln(w, rule)
	for i, d := range daily {
		eq := "-"
		if i < len(equity) {
			eq = fmt.Sprintf("%.2f", equity[i].Value)
		}
		fmt.Fprintf(w, "%-12s %12.2f %14s\n", d.Day, d.Value, eq)
	}
	fmt.Fprintln(w)
}

// PrintTrades writes the normalized records as a table.
func PrintTrades(w io.Writer, records []trade.Record) {
	fmt.Fprintf(w, "%-5s %-16s %-8s %-5s %12s %9s %8s %s\n",
		"Row", "Entry", "Coin", "Side", "P&L", "Return", "Fees", "Held")
	fmt.Fprintln(w, rule+rule)
	for _, r := range records {
		fmt.Fprintf(w, "%-5d %-16s %-8s %-5s %12.2f %8.2f%% %8.2f %s\n",
			r.Row, r.EntryTime.Format("2006-01-02 15:04"), r.Instrument, r.Side,
			r.TotalPnL, r.TotalPct, r.Fees, r.Holding().Round(time.Minute))
	}
}
