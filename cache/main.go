package cache

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"kingsaver/models"
)

const (
	DefaultTTL           = 5 * time.Minute
	DefaultSweepInterval = time.Minute
)

type entry struct {
	info       *models.MediaInfo
	insertedAt time.Time
}

// Cache maps a source URL to its resolved MediaInfo for a fixed time
// window. Purely in-memory, process-lifetime state; the periodic sweep
// is advisory cleanup, every read re-checks the timestamp.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry

	ttl           time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func New(ttl, sweepInterval time.Duration) *Cache {
	return NewWithClock(ttl, sweepInterval, time.Now)
}

// NewWithClock injects the clock, for deterministic expiry in tests.
func NewWithClock(ttl, sweepInterval time.Duration, now func() time.Time) *Cache {
	return &Cache{
		entries:       make(map[string]entry),
		ttl:           ttl,
		sweepInterval: sweepInterval,
		now:           now,
		stop:          make(chan struct{}),
	}
}

func (c *Cache) Get(key string) (*models.MediaInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) >= c.ttl {
		return nil, false
	}
	return e.info, true
}

func (c *Cache) Set(key string, info *models.MediaInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{info: info, insertedAt: c.now()}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Start launches the background sweep. Call Stop to shut it down.
func (c *Cache) Start() {
	ticker := time.NewTicker(c.sweepInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.stop:
				return
			}
		}
	}()
}

func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, e := range c.entries {
		if c.now().Sub(e.insertedAt) >= c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		zap.S().Debugf("cache sweep removed %d expired entries", removed)
	}
}
