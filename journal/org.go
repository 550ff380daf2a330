package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradeboard/trade"
)

// FormatTradeOrg renders a record as an Org-mode entry for a trading journal.
// Facts go in the PROPERTIES drawer so they stay searchable; the Thesis,
// Execution and Review headings are left for the trader to fill in.
func FormatTradeOrg(r trade.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s %s (row %d)\n", r.Instrument, r.Side, r.Row)
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ROW: %d\n", r.Row)
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", r.Instrument)
	fmt.Fprintf(&b, ":SIDE: %s\n", r.Side)
	fmt.Fprintf(&b, ":ENTRY_TIME: %s\n", r.EntryTime.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":LAST_EXIT: %s\n", r.LastExit.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":HOLDING: %s\n", r.Holding())
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.5f\n", r.EntryPrice)
	fmt.Fprintf(&b, ":QUANTITY: %g\n", r.EntryQuantity)
	fmt.Fprintf(&b, ":CAPITAL: %.2f\n", r.EntryCapital)
	fmt.Fprintf(&b, ":FEES: %.2f\n", r.Fees)
	fmt.Fprintf(&b, ":TOTAL_PNL: %.2f\n", r.TotalPnL)
	fmt.Fprintf(&b, ":TOTAL_PCT: %.2f\n", r.TotalPct)
	fmt.Fprintf(&b, ":OUTCOME: %s\n", r.Outcome())
	b.WriteString(":END:\n\n")

	b.WriteString("| Leg | P&L | Return % | Allocation % | Exit |\n")
	b.WriteString("|-----+-----+----------+--------------+------|\n")
	for i, l := range r.Legs {
		exit := "-"
		if l.Exited {
			exit = l.ExitTime.UTC().Format(time.RFC3339)
		}
		fmt.Fprintf(&b, "| P%d | %.2f | %.2f | %.2f | %s |\n", i+1, l.PnL, l.PnLPct, l.AllocationPct, exit)
	}
	b.WriteString("\n")

	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple records separated by blank lines.
func FormatTradesOrg(records []trade.Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(r))
	}
	return b.String()
}
