package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rustyeddy/tradeboard/sheet"
	"github.com/xuri/excelize/v2"
)

// XLSX reads a local workbook. The id is the file path and the range may
// name a sheet ("Trades!A1:T"); without one the first sheet is read.
type XLSX struct{}

func (XLSX) Fetch(ctx context.Context, path, rng string) (sheet.Grid, error) {
	grid, err := readXLSX(ctx, path, rng)
	if err != nil {
		return nil, &FetchError{Source: "xlsx", ID: path, Range: rng, Err: err}
	}
	return grid, nil
}

func readXLSX(ctx context.Context, path, rng string) (sheet.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, cells := splitRange(rng)
	b, err := parseA1(cells)
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if name == "" {
		name = f.GetSheetName(0)
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	return crop(rows, b), nil
}

// CSV reads a local comma separated export. The id is the file path; only
// the cell part of the range is used.
type CSV struct{}

func (CSV) Fetch(ctx context.Context, path, rng string) (sheet.Grid, error) {
	grid, err := readCSV(ctx, path, rng)
	if err != nil {
		return nil, &FetchError{Source: "csv", ID: path, Range: rng, Err: err}
	}
	return grid, nil
}

func readCSV(ctx context.Context, path, rng string) (sheet.Grid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	_, cells := splitRange(rng)
	b, err := parseA1(cells)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return crop(rows, b), nil
}
