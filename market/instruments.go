// market/instruments.go
package market

import (
	"errors"
	"fmt"
	"strings"
)

// Side is the direction of a trade as written in the TIPO column.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// ParseSide normalizes a raw side cell. Unknown sides are kept as written
// (upper-cased) so that filters and groupings still see them.
func ParseSide(s string) Side {
	return Side(strings.ToUpper(strings.TrimSpace(s)))
}

// ErrUnknownSide is returned by LookupSide for anything but LONG or SHORT.
var ErrUnknownSide = errors.New("side must be LONG or SHORT")

// LookupSide is the strict form of ParseSide used for user filters.
func LookupSide(s string) (Side, error) {
	switch side := ParseSide(s); side {
	case Long, Short:
		return side, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Status is the lifecycle state of a trade row.
type Status string

const (
	Open   Status = "OPEN"
	Closed Status = "CLOSED"
)

// DefaultClosedStatus lists the STATUS values that mark a round trip as
// complete. Portuguese-language sheets write FECHADO.
var DefaultClosedStatus = []string{"CLOSED", "FECHADO"}

// Instrument normalizes a COIN cell.
func Instrument(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
