package cache

import (
	"testing"
	"time"

	"kingsaver/models"
)

func TestCacheHit(t *testing.T) {
	c := New(DefaultTTL, DefaultSweepInterval)
	info := &models.MediaInfo{ID: "123"}
	c.Set("https://example.com/video/123", info)

	got, ok := c.Get("https://example.com/video/123")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got != info {
		t.Error("expected the exact cached pointer back")
	}
}

func TestCacheMiss(t *testing.T) {
	c := New(DefaultTTL, DefaultSweepInterval)
	if _, ok := c.Get("https://example.com/unknown"); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestCacheExpiry(t *testing.T) {
	current := time.Now()
	c := NewWithClock(5*time.Minute, time.Minute, func() time.Time { return current })
	c.Set("key", &models.MediaInfo{ID: "1"})

	current = current.Add(4 * time.Minute)
	if _, ok := c.Get("key"); !ok {
		t.Error("entry should still be live before the TTL")
	}

	current = current.Add(time.Minute)
	if _, ok := c.Get("key"); ok {
		t.Error("entry should be expired at the TTL boundary")
	}
}

func TestSweepRemovesExpiredEntries(t *testing.T) {
	current := time.Now()
	c := NewWithClock(5*time.Minute, time.Minute, func() time.Time { return current })
	c.Set("old", &models.MediaInfo{ID: "1"})
	current = current.Add(3 * time.Minute)
	c.Set("fresh", &models.MediaInfo{ID: "2"})
	current = current.Add(2 * time.Minute)

	c.sweep()

	if c.Len() != 1 {
		t.Fatalf("expected 1 entry after sweep, got %d", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive the sweep")
	}
}
