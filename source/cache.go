package source

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rustyeddy/tradeboard/sheet"
)

// Cached is a read-through cache in front of another Fetcher, keyed by
// (id, range). Failed fetches are not cached.
type Cached struct {
	next  Fetcher
	store *cache.Cache
}

// NewCached keeps grids for ttl.
func NewCached(next Fetcher, ttl time.Duration) *Cached {
	return &Cached{next: next, store: cache.New(ttl, 2*ttl)}
}

func key(id, rng string) string {
	return id + "|" + rng
}

func (c *Cached) Fetch(ctx context.Context, id, rng string) (sheet.Grid, error) {
	if v, ok := c.store.Get(key(id, rng)); ok {
		return clone(v.(sheet.Grid)), nil
	}
	grid, err := c.next.Fetch(ctx, id, rng)
	if err != nil {
		return nil, err
	}
	c.store.SetDefault(key(id, rng), clone(grid))
	return grid, nil
}

// Invalidate drops the cached grid for (id, rng).
func (c *Cached) Invalidate(id, rng string) {
	c.store.Delete(key(id, rng))
}

// Flush drops everything.
func (c *Cached) Flush() {
	c.store.Flush()
}
