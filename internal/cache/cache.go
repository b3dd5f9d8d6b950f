package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/treasurywatch/debt-tracker/internal/models"
)

// Key identifies one cached fetch: the requested window plus the caller's
// current-day marker. A new calendar day is a new key, so daily invalidation
// works even when 24 wall-clock hours have not elapsed.
type Key struct {
	WindowDays int
	Epoch      string
}

func (k Key) String() string {
	return fmt.Sprintf("%d@%s", k.WindowDays, k.Epoch)
}

type entry struct {
	series     models.DebtSeries
	insertedAt time.Time
}

// SeriesCache is the process-wide store of fetched series. Entries expire
// after the configured TTL; Clear drops everything immediately.
type SeriesCache struct {
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
	entries map[Key]entry
}

// NewSeriesCache creates an empty cache with the given TTL
func NewSeriesCache(ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[Key]entry),
	}
}

// Get returns the cached series for the key, or false on a miss. Expired
// entries are evicted on lookup.
func (c *SeriesCache) Get(key Key) (models.DebtSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.series, true
}

// Put stores a series under the key, stamping it with the current time
func (c *SeriesCache) Put(key Key, series models.DebtSeries) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{series: series, insertedAt: c.now()}
}

// Clear empties the cache so the next lookup goes back to the API
func (c *SeriesCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]entry)
}
