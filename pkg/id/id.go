// Package id generates ULIDs for export snapshots and dashboard sessions.
package id

import (
	"crypto/rand"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID stamped with the current time.
func New() string {
	return At(time.Now())
}

// At returns a ULID stamped with t. Ids made in the same millisecond sort in
// the order they were generated.
func At(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	// Only fails when the entropy source does, which crypto/rand does not.
	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String()
}

// Time returns the millisecond timestamp carried by id.
func Time(id string) (time.Time, error) {
	u, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse id %q: %w", id, err)
	}
	return ulid.Time(u.Time()).UTC(), nil
}
