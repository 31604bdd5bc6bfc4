package chart

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/etnz/fundperf"
)

// DefaultTTL is how long a rendered chart is served from the cache.
const DefaultTTL = 60 * time.Second

// MaxEntries is the number of images a cache holds at most.
const MaxEntries = 128

type cacheEntry struct {
	createdAt time.Time
	image     []byte
}

// Cache keeps rendered images for a short time. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewCache returns an empty cache keeping images for ttl.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: make(map[string]cacheEntry), now: time.Now}
}

// Get returns a copy of the image stored under key, if it has not expired.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.createdAt.Add(c.ttl)) {
		delete(c.entries, key)
		return nil, false
	}
	img := make([]byte, len(entry.image))
	copy(img, entry.image)
	return img, true
}

// Set stores img under key.
//
// Expired entries are dropped, and the oldest ones too when the cache is full.
func (c *Cache) Set(key string, img []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, entry := range c.entries {
		if !now.Before(entry.createdAt.Add(c.ttl)) {
			delete(c.entries, k)
		}
	}
	delete(c.entries, key)
	for len(c.entries) >= MaxEntries {
		var oldest string
		var at time.Time
		for k, entry := range c.entries {
			if at.IsZero() || entry.createdAt.Before(at) {
				oldest, at = k, entry.createdAt
			}
		}
		delete(c.entries, oldest)
	}
	c.entries[key] = cacheEntry{createdAt: now, image: img}
}

// Len returns the number of images held, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Render returns the cached image of the curve, or renders and caches it.
func (c *Cache) Render(curve *fundperf.Curve, opts Options) ([]byte, error) {
	key := Key(curve, opts)
	if img, ok := c.Get(key); ok {
		return img, nil
	}
	img, err := Render(curve, opts)
	if err != nil {
		return nil, err
	}
	c.Set(key, img)
	return img, nil
}

// Key identifies the image of a curve: its currency, window, funds and size.
func Key(curve *fundperf.Curve, opts Options) string {
	return strings.Join([]string{
		curve.Currency.String(),
		curve.Range.String(),
		strings.Join(curve.Funds(), ","),
		fmt.Sprintf("%dx%d", opts.Width, opts.Height),
	}, "|")
}
