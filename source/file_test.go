package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheetName string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheetName != "Sheet1" {
		idx, err := f.NewSheet(sheetName)
		require.NoError(t, err)
		f.SetActiveSheet(idx)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow(sheetName, cell, &r))
	}

	path := filepath.Join(t.TempDir(), "trades.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestXLSXFetch(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "CONTROLE", [][]any{
		{"DATAHORA", "COIN", "TIPO"},
		{"2024-03-01 10:00", "BTC", "LONG"},
		{"2024-03-02 11:00", "ETH", "SHORT"},
	})

	grid, err := XLSX{}.Fetch(context.Background(), path, "CONTROLE!A1:B")
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"DATAHORA", "COIN"}, grid[0])
	assert.Equal(t, []string{"2024-03-02 11:00", "ETH"}, grid[2])

	grid, err = XLSX{}.Fetch(context.Background(), path, "CONTROLE")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01 10:00", "BTC", "LONG"}, grid[1])
}

func TestXLSXFetchErrors(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "Sheet1", [][]any{{"DATAHORA"}})

	_, err := XLSX{}.Fetch(context.Background(), path, "Missing!A1:B")
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "xlsx", fe.Source)

	_, err = XLSX{}.Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.xlsx"), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = XLSX{}.Fetch(ctx, path, "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVFetch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	data := "DATAHORA,COIN,TIPO\n2024-03-01 10:00,BTC,LONG\n2024-03-02 11:00,ETH\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	grid, err := CSV{}.Fetch(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, grid, 3)
	assert.Equal(t, []string{"2024-03-02 11:00", "ETH"}, grid[2])

	grid, err = CSV{}.Fetch(context.Background(), path, "Trades!B1:C2")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"COIN", "TIPO"}, {"BTC", "LONG"}}, [][]string(grid))

	_, err = CSV{}.Fetch(context.Background(), path, "A0:B")
	assert.Error(t, err)
}

func TestSplitRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, name, cells string
	}{
		{"CONTROLE!A1:T", "CONTROLE", "A1:T"},
		{"'My Trades'!A:C", "My Trades", "A:C"},
		{"A1:T", "", "A1:T"},
		{"B7", "", "B7"},
		{"ABC", "ABC", ""},
		{"Sheet1", "Sheet1", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			name, cells := splitRange(tt.in)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.cells, cells)
		})
	}
}

func TestCrop(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"a", "b", "c"},
		{"d", "e"},
		{"f", "g", "h"},
	}

	tests := []struct {
		name  string
		cells string
		want  [][]string
	}{
		{"whole", "", rows},
		{"open rows", "B1:C", [][]string{{"b", "c"}, {"e"}, {"g", "h"}}},
		{"single cell", "C3", [][]string{{"h"}}},
		{"past the end", "A5:B9", [][]string{}},
		{"short row", "C2:C2", [][]string{nil}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, err := parseA1(tt.cells)
			require.NoError(t, err)
			assert.Equal(t, tt.want, [][]string(crop(rows, b)))
		})
	}
}
