package insights

import (
	"testing"
	"time"

	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func rec(i int, coin string, side market.Side, pnl, pct float64, held time.Duration) trade.Record {
	entry := base.Add(time.Duration(i) * time.Hour)
	return trade.Record{
		Row:        i + 2,
		EntryTime:  entry,
		LastExit:   entry.Add(held),
		Instrument: coin,
		Side:       side,
		TotalPnL:   pnl,
		TotalPct:   pct,
		Day:        entry.Format(trade.DayLayout),
	}
}

func TestExtract(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec(0, "BTC", market.Long, 100, 5, 2*time.Hour),
		rec(1, "ETH", market.Short, -40, -8, 30*time.Hour),
		rec(2, "BTC", market.Long, -10, -1, time.Hour),
		rec(3, "SOL", market.Short, 60, 12, 3*time.Hour),
		rec(4, "ETH", market.Long, 20, 2, 30*time.Hour),
	}

	in := Extract(recs)

	require.NotNil(t, in.MostFrequent)
	assert.Equal(t, "BTC", in.MostFrequent.Instrument, "BTC and ETH tie; BTC came first")
	assert.Equal(t, 2, in.MostFrequent.Count)

	assert.Equal(t, 2, in.BestPnL.Row)
	assert.Equal(t, 3, in.WorstPnL.Row)
	assert.Equal(t, 5, in.BestReturn.Row)
	assert.Equal(t, 3, in.WorstReturn.Row)

	require.NotNil(t, in.Longest)
	assert.Equal(t, 3, in.Longest.Record.Row, "first of the two 30h trades")
	assert.Equal(t, 30*time.Hour, in.Longest.Duration)

	require.NotNil(t, in.Long)
	assert.Equal(t, 2, in.Long.Best.Row)
	assert.Equal(t, 4, in.Long.Worst.Row)
	require.NotNil(t, in.Short)
	assert.Equal(t, 5, in.Short.Best.Row)
	assert.Equal(t, 3, in.Short.Worst.Row)

	require.NotNil(t, in.BestInstrument)
	assert.Equal(t, "BTC", in.BestInstrument.Instrument)
	assert.InDelta(t, 90.0, in.BestInstrument.PnL, 1e-9)
	assert.Equal(t, "ETH", in.WorstInstrument.Instrument)
	assert.InDelta(t, -20.0, in.WorstInstrument.PnL, 1e-9)
	assert.Len(t, in.Ranking, 3)
}

func TestExtractAllLongOmitsShort(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec(0, "BTC", market.Long, 10, 1, time.Hour),
		rec(1, "ETH", market.Long, -5, -1, time.Hour),
	}

	var in Insights
	assert.NotPanics(t, func() { in = Extract(recs) })
	assert.Nil(t, in.Short)
	require.NotNil(t, in.Long)
	assert.Equal(t, "BTC", in.Long.Best.Instrument)
	assert.Equal(t, "ETH", in.Long.Worst.Instrument)
}

func TestExtractEmpty(t *testing.T) {
	t.Parallel()

	in := Extract(nil)
	assert.Nil(t, in.MostFrequent)
	assert.Nil(t, in.BestPnL)
	assert.Nil(t, in.WorstPnL)
	assert.Nil(t, in.BestReturn)
	assert.Nil(t, in.WorstReturn)
	assert.Nil(t, in.Longest)
	assert.Nil(t, in.Long)
	assert.Nil(t, in.Short)
	assert.Nil(t, in.BestInstrument)
	assert.Nil(t, in.WorstInstrument)
	assert.Empty(t, in.Ranking)
}

func TestTiesGoToFirstRecord(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec(0, "A", market.Long, 10, 3, time.Hour),
		rec(1, "B", market.Long, 10, 3, time.Hour),
		rec(2, "C", market.Long, 10, 3, time.Hour),
	}

	assert.Equal(t, "A", MaxBy(recs, pnl).Instrument)
	assert.Equal(t, "A", MinBy(recs, pnl).Instrument)
	assert.Equal(t, "A", MostFrequent(recs).Instrument)
	assert.Equal(t, "A", Longest(recs).Record.Instrument)
}

func TestWorstInstrumentTieGoesToFirstSeen(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{
		rec(0, "WIN", market.Long, 50, 5, time.Hour),
		rec(1, "AAA", market.Long, -10, -1, time.Hour),
		rec(2, "BBB", market.Long, -10, -1, time.Hour),
	}

	in := Extract(recs)
	require.NotNil(t, in.BestInstrument)
	require.NotNil(t, in.WorstInstrument)
	assert.Equal(t, "WIN", in.BestInstrument.Instrument)
	assert.Equal(t, "AAA", in.WorstInstrument.Instrument)
}

func TestResultsAreCopies(t *testing.T) {
	t.Parallel()

	recs := []trade.Record{rec(0, "BTC", market.Long, 10, 1, time.Hour)}
	best := MaxBy(recs, pnl)
	best.TotalPnL = 999
	assert.InDelta(t, 10.0, recs[0].TotalPnL, 1e-9)
}
