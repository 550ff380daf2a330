// Package sheet turns the text cells of a trade spreadsheet into typed values.
package sheet

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmpty is returned for blank cells. Callers decide whether a blank
	// means zero; the parser never does.
	ErrEmpty = errors.New("empty value")

	// ErrMalformed is returned when a non-blank cell is not a number or time.
	ErrMalformed = errors.New("malformed value")
)

var moneyReplacer = strings.NewReplacer("$", "", ",", "", " ", "")

var percentReplacer = strings.NewReplacer("%", "", ",", "", " ", "")

// ParseMoney reads a currency cell such as "$1,234.50" or "-$12.00".
func ParseMoney(s string) (float64, error) {
	return parseWith(s, moneyReplacer)
}

// ParsePercent reads a percentage cell such as "12.5%" and returns 12.5.
func ParsePercent(s string) (float64, error) {
	return parseWith(s, percentReplacer)
}

// ParseNumber reads a plain numeric cell.
func ParseNumber(s string) (float64, error) {
	return parseWith(s, nil)
}

func parseWith(s string, r *strings.Replacer) (float64, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, ErrEmpty
	}
	clean := raw
	if r != nil {
		clean = r.Replace(raw)
	}
	if clean == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, raw)
	}
	return d.InexactFloat64(), nil
}

// DefaultLayouts are tried in order by ParseTime. Slash dates are month
// first, matching how the sheet export is read elsewhere.
var DefaultLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/2006",
}

// ParseTime reads a timestamp cell in loc. RFC3339 values keep their own
// offset. A nil loc means time.Local and empty layouts mean DefaultLayouts.
func ParseTime(s string, loc *time.Location, layouts []string) (time.Time, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return time.Time{}, ErrEmpty
	}
	if loc == nil {
		loc = time.Local
	}
	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a known time layout", ErrMalformed, raw)
}
