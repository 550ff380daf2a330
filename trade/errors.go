package trade

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn means the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")

	// ErrNoExit means a closed trade has no exit date on any leg.
	ErrNoExit = errors.New("closed trade has no exit leg")
)

// IntegrityError reports the cell that stopped normalization. The whole load
// fails; partially normalized data is never returned.
type IntegrityError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}
