package matcher

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Tameem1/quranlex/internal/metrics"
	"github.com/Tameem1/quranlex/pkg/arabic"
)

type cacheEntry struct {
	result  *Result
	expires time.Time // zero means no expiry
}

// Cache memoizes match results keyed by the normalized query. The corpus
// behind the matcher never changes, so entries stay valid for the life of
// the process; the TTL exists to bound memory churn on hostile query
// streams and may be zero.
type Cache struct {
	matcher *Matcher
	entries *lru.Cache[string, cacheEntry]
	ttl     time.Duration

	mu        sync.RWMutex
	hits      uint64
	misses    uint64
	evictions uint64
}

// NewCache wraps m with an LRU of the given size. size must be positive.
func NewCache(m *Matcher, size int, ttl time.Duration) (*Cache, error) {
	entries, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{matcher: m, entries: entries, ttl: ttl}, nil
}

// Match behaves exactly like Matcher.Match. The note is rebuilt from the
// cached result so a miss always names the caller's own query.
func (c *Cache) Match(query string) (*Result, string) {
	key := arabic.Normalize(query)

	if e, ok := c.entries.Get(key); ok {
		if e.expires.IsZero() || time.Now().Before(e.expires) {
			c.mu.Lock()
			c.hits++
			c.mu.Unlock()
			metrics.MatchCacheHits.Inc()
			return e.result, c.note(e.result, query)
		}
		c.entries.Remove(key)
	}

	res, note := c.matcher.Match(query)
	e := cacheEntry{result: res}
	if c.ttl > 0 {
		e.expires = time.Now().Add(c.ttl)
	}
	evicted := c.entries.Add(key, e)

	c.mu.Lock()
	c.misses++
	if evicted {
		c.evictions++
	}
	c.mu.Unlock()
	metrics.MatchCacheMisses.Inc()
	return res, note
}

func (c *Cache) note(res *Result, query string) string {
	if res != nil {
		return hitNote(res.Word)
	}
	return missNote(query)
}

// Stats returns the hit, miss and eviction counters.
func (c *Cache) Stats() (hits, misses, evictions uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses, c.evictions
}

// Len returns the number of cached entries.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops every cached entry. The counters are kept.
func (c *Cache) Purge() { c.entries.Purge() }
