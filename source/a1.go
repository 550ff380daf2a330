package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradeboard/sheet"
	"github.com/xuri/excelize/v2"
)

// splitRange splits "Sheet!A1:T" into the sheet name and the cell part.
// A range without "!" that looks like cells has no sheet name; anything else
// is taken as a sheet name.
func splitRange(rng string) (sheetName, cells string) {
	rng = strings.TrimSpace(rng)
	if i := strings.LastIndex(rng, "!"); i >= 0 {
		return strings.Trim(rng[:i], "'"), rng[i+1:]
	}
	if strings.ContainsAny(rng, ":0123456789") {
		if _, err := parseA1(rng); err == nil {
			return "", rng
		}
	}
	return strings.Trim(rng, "'"), ""
}

// bounds are 1-based inclusive; zero means open-ended.
type bounds struct {
	col0, row0 int
	col1, row1 int
}

func parseA1(cells string) (bounds, error) {
	var b bounds
	if cells == "" {
		return b, nil
	}
	from, to, ok := strings.Cut(cells, ":")
	var err error
	if b.col0, b.row0, err = parseRef(from); err != nil {
		return b, err
	}
	if !ok {
		b.col1, b.row1 = b.col0, b.row0
		return b, nil
	}
	if b.col1, b.row1, err = parseRef(to); err != nil {
		return b, err
	}
	return b, nil
}

// parseRef reads "B7", "B" or "7".
func parseRef(ref string) (col, row int, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	i := strings.IndexFunc(ref, func(r rune) bool { return r >= '0' && r <= '9' })
	letters, digits := ref, ""
	if i >= 0 {
		letters, digits = ref[:i], ref[i:]
	}
	if letters == "" && digits == "" {
		return 0, 0, fmt.Errorf("empty cell reference")
	}
	if letters != "" {
		if col, err = excelize.ColumnNameToNumber(letters); err != nil {
			return 0, 0, fmt.Errorf("cell reference %q: %w", ref, err)
		}
	}
	if digits != "" {
		if row, err = strconv.Atoi(digits); err != nil || row < 1 {
			return 0, 0, fmt.Errorf("cell reference %q: bad row", ref)
		}
	}
	return col, row, nil
}

// crop cuts b out of a grid read from the top-left cell A1.
func crop(rows [][]string, b bounds) sheet.Grid {
	r0, r1 := 0, len(rows)
	if b.row0 > 0 {
		r0 = min(b.row0-1, len(rows))
	}
	if b.row1 > 0 && b.row1 < r1 {
		r1 = b.row1
	}
	if r0 >= r1 {
		return sheet.Grid{}
	}

	out := make(sheet.Grid, 0, r1-r0)
	for _, row := range rows[r0:r1] {
		c0, c1 := 0, len(row)
		if b.col0 > 0 {
			c0 = min(b.col0-1, len(row))
		}
		if b.col1 > 0 && b.col1 < c1 {
			c1 = b.col1
		}
		if c0 > c1 {
			c0 = c1
		}
		out = append(out, append([]string(nil), row[c0:c1]...))
	}
	return out
}
