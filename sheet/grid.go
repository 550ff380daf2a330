package sheet

import (
	"errors"
	"strings"
)

// ErrNoHeader is returned for a grid without a header row.
var ErrNoHeader = errors.New("grid has no header row")

// Grid is a block of cells as retrieved from the source. The first row names
// the columns.
type Grid [][]string

// Header indexes the grid's first row.
func (g Grid) Header() (Header, error) {
	if len(g) == 0 {
		return nil, ErrNoHeader
	}
	return NewHeader(g[0]), nil
}

// Rows returns the data rows, without the header.
func (g Grid) Rows() [][]string {
	if len(g) < 2 {
		return nil
	}
	return g[1:]
}

// Header maps a column name to its index.
type Header map[string]int

// NewHeader indexes row. Names are trimmed; the first of duplicate names wins.
func NewHeader(row []string) Header {
	h := make(Header, len(row))
	for i, name := range row {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := h[name]; !ok {
			h[name] = i
		}
	}
	return h
}

// Missing returns the first of names that is not a column.
func (h Header) Missing(names ...string) (string, bool) {
	for _, n := range names {
		if _, ok := h[n]; !ok {
			return n, true
		}
	}
	return "", false
}

// Cell returns the trimmed value of column name in row. Rows may be shorter
// than the header when trailing cells are blank; those read as "".
func (h Header) Cell(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
