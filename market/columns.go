package market

// Column headers of the trade sheet. The fee column is configurable and
// defaults to ColFees.
const (
	ColEntryTime     = "DATAHORA"
	ColCoin          = "COIN"
	ColSide          = "TIPO"
	ColStatus        = "STATUS"
	ColEntryPrice    = "BUY AVG"
	ColEntryQuantity = "BUY QNT"
	ColEntryCapital  = "BUY CAPITAL"
	ColFees          = "FEES"
)

// LegColumns names the cells that describe one partial exit.
type LegColumns struct {
	PnL        string
	PnLPct     string
	Allocation string
	Date       string
}

// Legs are the three exit legs in sheet order.
var Legs = [3]LegColumns{
	{PnL: "P1 PNL", PnLPct: "P1 PNL %", Allocation: "P1 %", Date: "P1 DATE"},
	{PnL: "P2 PNL", PnLPct: "P2 PNL %", Allocation: "P2 %", Date: "P2 DATE"},
	{PnL: "P3 PNL", PnLPct: "P3 PNL %", Allocation: "P3 %", Date: "P3 DATE"},
}

// RequiredColumns returns every header the normalizer reads, using fees as
// the fee column name.
func RequiredColumns(fees string) []string {
	cols := []string{
		ColEntryTime, ColCoin, ColSide, ColStatus,
		ColEntryPrice, ColEntryQuantity, ColEntryCapital,
	}
	for _, l := range Legs {
		cols = append(cols, l.PnL, l.PnLPct, l.Allocation, l.Date)
	}
	if fees == "" {
		fees = ColFees
	}
	return append(cols, fees)
}
