package trade

import (
	"testing"

	"github.com/rustyeddy/tradeboard/market"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	recs := []Record{
		{Instrument: "BTC", Side: market.Long},
		{Instrument: "ETH", Side: market.Short},
		{Instrument: "BTC", Side: market.Short},
		{Instrument: "SOL", Side: market.Long},
	}

	assert.Len(t, Filter{}.Apply(recs), 4)
	assert.Len(t, Filter{Instruments: []string{"btc"}}.Apply(recs), 2)
	assert.Len(t, Filter{Side: market.Short}.Apply(recs), 2)

	got := Filter{Instruments: []string{"BTC", "SOL"}, Side: market.Long}.Apply(recs)
	assert.Equal(t, []Record{recs[0], recs[3]}, got)

	assert.Equal(t, []string{"BTC", "ETH", "SOL"}, Instruments(recs))
	assert.Equal(t, []market.Side{market.Long, market.Short}, Sides(recs))
}
