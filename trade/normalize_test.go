package trade

import (
	"errors"
	"testing"
	"time"

	"github.com/rustyeddy/tradeboard/market"
	"github.com/rustyeddy/tradeboard/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHeader = []string{
	"DATAHORA", "COIN", "TIPO", "STATUS", "BUY AVG", "BUY QNT", "BUY CAPITAL",
	"P1 PNL", "P1 PNL %", "P2 PNL", "P2 PNL %", "P3 PNL", "P3 PNL %",
	"P1 %", "P2 %", "P3 %", "P1 DATE", "P2 DATE", "P3 DATE", "FEES",
}

var brt = time.FixedZone("BRT", -3*3600)

func testRow(cells map[string]string) []string {
	row := make([]string, len(testHeader))
	for i, col := range testHeader {
		row[i] = cells[col]
	}
	return row
}

func closedTrade(entry, coin, pnl, exit string) map[string]string {
	return map[string]string{
		"DATAHORA": entry, "COIN": coin, "TIPO": "LONG", "STATUS": "CLOSED",
		"BUY AVG": "$100.00", "BUY QNT": "1", "BUY CAPITAL": "$100.00",
		"P1 PNL": pnl, "P1 PNL %": "1%", "P1 %": "100%", "P1 DATE": exit,
		"FEES": "$1.00",
	}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Location = brt
	return opts
}

func TestNormalizeSingleLeg(t *testing.T) {
	t.Parallel()

	grid := sheet.Grid{
		testHeader,
		testRow(map[string]string{
			"DATAHORA": "2024-03-01 10:00:00", "COIN": "btc", "TIPO": "long", "STATUS": "CLOSED",
			"BUY AVG": "$60,000.00", "BUY QNT": "0.01", "BUY CAPITAL": "$600.00",
			"P1 PNL": "$45.50", "P1 PNL %": "7.5%", "P1 %": "100%", "P1 DATE": "2024-03-02 12:00:00",
			"FEES": "$1.20",
		}),
	}

	recs, err := Normalize(grid, testOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, 2, r.Row)
	assert.Equal(t, "BTC", r.Instrument)
	assert.Equal(t, market.Long, r.Side)
	assert.InDelta(t, 60000.0, r.EntryPrice, 1e-9)
	assert.InDelta(t, 0.01, r.EntryQuantity, 1e-12)
	assert.InDelta(t, 600.0, r.EntryCapital, 1e-9)
	assert.InDelta(t, 45.5, r.TotalPnL, 1e-9)
	assert.InDelta(t, 7.5, r.TotalPct, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, brt), r.LastExit)
	assert.False(t, r.Legs[1].Exited)
	assert.False(t, r.Legs[2].Exited)
	assert.Zero(t, r.Legs[1].PnL)
	assert.InDelta(t, 1.2, r.Fees, 1e-9)
	assert.Equal(t, "2024-03-01", r.Day)
	assert.Equal(t, 26*time.Hour, r.Holding())
}

func TestNormalizeBlendsThreeLegs(t *testing.T) {
	t.Parallel()

	grid := sheet.Grid{
		testHeader,
		testRow(map[string]string{
			"DATAHORA": "2024-03-01 10:00:00", "COIN": "ETH", "TIPO": "SHORT", "STATUS": "CLOSED",
			"P1 PNL": "$50.00", "P1 PNL %": "10%", "P1 %": "50%", "P1 DATE": "2024-03-01 11:00:00",
			"P2 PNL": "$30.00", "P2 PNL %": "20%", "P2 %": "30%", "P2 DATE": "2024-03-04 09:00:00",
			"P3 PNL": "-$10.00", "P3 PNL %": "-5%", "P3 %": "20%", "P3 DATE": "2024-03-03 09:00:00",
			"FEES": "-$2.50",
		}),
	}

	recs, err := Normalize(grid, testOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.InDelta(t, r.Legs[0].PnL+r.Legs[1].PnL+r.Legs[2].PnL, r.TotalPnL, 1e-9)
	assert.InDelta(t, 70.0, r.TotalPnL, 1e-9)
	// 10*50/100 + 20*30/100 - 5*20/100
	assert.InDelta(t, 10.0, r.TotalPct, 1e-9)
	assert.Equal(t, time.Date(2024, 3, 4, 9, 0, 0, 0, brt), r.LastExit)
	assert.InDelta(t, 2.5, r.Fees, 1e-9, "fees are a cost magnitude")
	assert.Equal(t, market.Short, r.Side)
}

func TestNormalizeDropsOpenAndUndated(t *testing.T) {
	t.Parallel()

	open := closedTrade("2024-03-01 10:00:00", "SOL", "$5.00", "")
	open["STATUS"] = "OPEN"
	undated := closedTrade("", "ADA", "$5.00", "2024-03-02 10:00:00")
	fechado := closedTrade("2024-03-01 12:00:00", "XRP", "$3.00", "2024-03-02 10:00:00")
	fechado["STATUS"] = "fechado"

	grid := sheet.Grid{
		testHeader,
		testRow(open),
		testRow(undated),
		testRow(closedTrade("2024-03-01 11:00:00", "BTC", "$1.00", "2024-03-02 10:00:00")),
		testRow(fechado),
		{},
	}

	recs, err := Normalize(grid, testOptions())
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "BTC", recs[0].Instrument)
	assert.Equal(t, "XRP", recs[1].Instrument)
}

func TestNormalizeSortsByEntryTime(t *testing.T) {
	t.Parallel()

	grid := sheet.Grid{
		testHeader,
		testRow(closedTrade("2024-03-03 10:00:00", "C", "$1.00", "2024-03-04 10:00:00")),
		testRow(closedTrade("2024-03-01 10:00:00", "A", "$1.00", "2024-03-04 10:00:00")),
		testRow(closedTrade("2024-03-02 10:00:00", "B1", "$1.00", "2024-03-04 10:00:00")),
		testRow(closedTrade("2024-03-02 10:00:00", "B2", "$1.00", "2024-03-04 10:00:00")),
	}

	recs, err := Normalize(grid, testOptions())
	require.NoError(t, err)

	var got []string
	for _, r := range recs {
		got = append(got, r.Instrument)
	}
	assert.Equal(t, []string{"A", "B1", "B2", "C"}, got)
	assert.Equal(t, 3, recs[0].Row)
}

func TestNormalizeSameDayBucket(t *testing.T) {
	t.Parallel()

	grid := sheet.Grid{
		testHeader,
		testRow(closedTrade("2024-03-01 00:05:00", "A", "$1.00", "2024-03-02 10:00:00")),
		testRow(closedTrade("2024-03-01 23:55:00", "B", "$1.00", "2024-03-02 10:00:00")),
		// 01:30 UTC on the 2nd is still the 1st in BRT
		testRow(closedTrade("2024-03-02T01:30:00Z", "C", "$1.00", "2024-03-02 10:00:00")),
	}

	recs, err := Normalize(grid, testOptions())
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Equal(t, "2024-03-01", r.Day, r.Instrument)
	}
}

func TestNormalizeShortRowsArePadded(t *testing.T) {
	t.Parallel()

	row := testRow(closedTrade("2024-03-01 10:00:00", "BTC", "$1.00", "2024-03-02 10:00:00"))
	// drop the trailing blank P2/P3 dates and fee, the way the Sheets API does
	short := row[:17]

	recs, err := Normalize(sheet.Grid{testHeader, short}, testOptions())
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Zero(t, recs[0].Fees)
}

func TestNormalizeMissingColumn(t *testing.T) {
	t.Parallel()

	header := append([]string{}, testHeader[:len(testHeader)-1]...)
	_, err := Normalize(sheet.Grid{header}, testOptions())

	var ierr *IntegrityError
	require.ErrorAs(t, err, &ierr)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Equal(t, "FEES", ierr.Column)
	assert.Equal(t, 1, ierr.Row)
}

func TestNormalizeCustomFeeColumn(t *testing.T) {
	t.Parallel()

	header := append([]string{}, testHeader...)
	header[len(header)-1] = "TAXAS"
	row := testRow(closedTrade("2024-03-01 10:00:00", "BTC", "$1.00", "2024-03-02 10:00:00"))

	opts := testOptions()
	opts.FeeColumn = "TAXAS"
	recs, err := Normalize(sheet.Grid{header, row}, opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, recs[0].Fees, 1e-9)
}

func TestNormalizeIntegrityErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(map[string]string)
		column string
		target error
	}{
		{"bad pnl", func(m map[string]string) { m["P1 PNL"] = "lots" }, "P1 PNL", sheet.ErrMalformed},
		{"bad allocation", func(m map[string]string) { m["P2 %"] = "half" }, "P2 %", sheet.ErrMalformed},
		{"bad entry time", func(m map[string]string) { m["DATAHORA"] = "soon" }, "DATAHORA", sheet.ErrMalformed},
		{"bad exit date", func(m map[string]string) { m["P1 DATE"] = "32/13/2024" }, "P1 DATE", sheet.ErrMalformed},
		{"bad fee", func(m map[string]string) { m["FEES"] = "n/a" }, "FEES", sheet.ErrMalformed},
		{"no exit", func(m map[string]string) { m["P1 DATE"] = "" }, "P1 DATE, P2 DATE, P3 DATE", ErrNoExit},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			good := closedTrade("2024-03-01 10:00:00", "BTC", "$1.00", "2024-03-02 10:00:00")
			bad := closedTrade("2024-03-01 11:00:00", "ETH", "$1.00", "2024-03-02 10:00:00")
			tt.mutate(bad)

			recs, err := Normalize(sheet.Grid{testHeader, testRow(good), testRow(bad)}, testOptions())
			assert.Nil(t, recs, "no partial load")

			var ierr *IntegrityError
			require.True(t, errors.As(err, &ierr))
			assert.Equal(t, 3, ierr.Row)
			assert.Equal(t, tt.column, ierr.Column)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestNormalizeEmptyGrid(t *testing.T) {
	t.Parallel()

	_, err := Normalize(nil, testOptions())
	assert.ErrorIs(t, err, sheet.ErrNoHeader)

	recs, err := Normalize(sheet.Grid{testHeader}, testOptions())
	assert.NoError(t, err)
	assert.Empty(t, recs)
}
