// Package source retrieves the raw trade grid from where the journal lives:
// a Google Sheet, a local workbook or a CSV export.
package source

import (
	"context"
	"fmt"

	"github.com/rustyeddy/tradeboard/sheet"
)

// Fetcher returns the cells of rng in the document identified by id. The
// first row of the grid is the header.
type Fetcher interface {
	Fetch(ctx context.Context, id, rng string) (sheet.Grid, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, id, rng string) (sheet.Grid, error)

func (f FetcherFunc) Fetch(ctx context.Context, id, rng string) (sheet.Grid, error) {
	return f(ctx, id, rng)
}

// FetchError means the source could not be read. Nothing was loaded.
type FetchError struct {
	Source string
	ID     string
	Range  string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %s (%s): %v", e.Source, e.ID, e.Range, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func clone(g sheet.Grid) sheet.Grid {
	out := make(sheet.Grid, len(g))
	for i, row := range g {
		out[i] = append([]string(nil), row...)
	}
	return out
}
