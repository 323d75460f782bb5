package services

import (
	"sync"
	"time"

	"github.com/CodeWithAdityaKumar/akmovies4upro-ipl-live/models"
	"github.com/sirupsen/logrus"
)

// cacheEntry holds a cached match record with its expiry and insertion
// order for FIFO eviction.
type cacheEntry struct {
	matchInfo  *models.MatchInfo
	expiresAt  time.Time
	insertedAt time.Time
}

// MatchCache is a TTL cache for scraped match data, keyed by match path.
// The TTL is kept short so a polling client never sees data older than one
// refresh window; the cache exists to absorb bursts of identical requests,
// not to persist anything.
type MatchCache struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	stopChan   chan struct{}
	stopOnce   sync.Once
}

const defaultMaxCacheEntries = 256

// NewMatchCache creates a cache with the given TTL and starts its cleanup
// loop.
func NewMatchCache(ttl time.Duration) *MatchCache {
	cache := &MatchCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: defaultMaxCacheEntries,
		stopChan:   make(chan struct{}),
	}
	go cache.cleanupLoop()
	return cache
}

// Get returns the cached record for matchPath when present and fresh.
func (c *MatchCache) Get(matchPath string) (*models.MatchInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[matchPath]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.matchInfo, true
}

// Set stores a record, evicting the oldest entry when the cache is full.
func (c *MatchCache) Set(matchPath string, matchInfo *models.MatchInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}

	now := time.Now()
	c.entries[matchPath] = cacheEntry{
		matchInfo:  matchInfo,
		expiresAt:  now.Add(c.ttl),
		insertedAt: now,
	}
}

// Len returns the current number of entries, expired or not.
func (c *MatchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the cleanup loop.
func (c *MatchCache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
}

func (c *MatchCache) evictOldestLocked() {
	oldestKey := ""
	var oldestTime time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.insertedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.insertedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *MatchCache) cleanupLoop() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopChan:
			return
		}
	}
}

func (c *MatchCache) removeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"component": "match_cache",
			"removed":   removed,
			"remaining": len(c.entries),
		}).Debug("expired cache entries removed")
	}
}
