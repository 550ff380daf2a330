package metrics

import (
	"testing"

	"github.com/rustyeddy/tradeboard/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistogram(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec("2024-01-01", -10, 0),
		rec("2024-01-01", -4, 0),
		rec("2024-01-01", 0, 0),
		rec("2024-01-01", 6, 0),
		rec("2024-01-01", 10, 0),
	}

	bins := Histogram(recs, 4)
	require.Len(t, bins, 4)
	assert.InDelta(t, -10.0, bins[0].Low, 1e-9)
	assert.InDelta(t, 10.0, bins[3].High, 1e-9)

	total := 0
	for _, b := range bins {
		total += b.Count()
	}
	assert.Equal(t, len(recs), total)

	// -10 and -4 land in [-10,-5) and [-5,0)
	assert.Equal(t, 1, bins[0].Losses)
	assert.Equal(t, 1, bins[1].Losses)
	// 0 is a break-even gain in [0,5)
	assert.Equal(t, 1, bins[2].Gains)
	// 6 and the max value 10 share the last bin
	assert.Equal(t, 2, bins[3].Gains)
}

func TestHistogramDegenerate(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Histogram(nil, 10))
	assert.Nil(t, Histogram([]trade.Record{rec("2024-01-01", 1, 0)}, 0))

	same := Histogram([]trade.Record{rec("2024-01-01", 5, 0), rec("2024-01-02", 5, 0)}, 10)
	require.Len(t, same, 1)
	assert.Equal(t, 2, same[0].Gains)
}

func TestByInstrument(t *testing.T) {
	t.Parallel()

	mk := func(coin string, pnl float64) trade.Record {
		r := rec("2024-01-01", pnl, 0)
		r.Instrument = coin
		return r
	}
	recs := []trade.Record{
		mk("ETH", 10), mk("BTC", 50), mk("SOL", -30), mk("ETH", -20), mk("ADA", 50), mk("DOGE", -10),
	}

	got := ByInstrument(recs)
	require.Len(t, got, 5)

	var order []string
	for _, it := range got {
		order = append(order, it.Instrument)
	}
	// BTC and ADA tie at 50; BTC appears first
	assert.Equal(t, []string{"BTC", "ADA", "ETH", "DOGE", "SOL"}, order)
	assert.InDelta(t, -10.0, got[2].PnL, 1e-9)
	assert.InDelta(t, 30.0, got[2].AbsPnL, 1e-9)
	assert.Equal(t, 2, got[2].Trades)
	assert.Empty(t, ByInstrument(nil))
}
