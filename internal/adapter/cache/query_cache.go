package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"vidseg/internal/domain"
)

// QueryCache memoizes similarity-search results per recording. Entries
// are TTL- and LRU-bounded, and invalidated per recording when its
// segment set changes (ingest or delete), keyed off a generation counter
// so stale entries die lazily on next lookup.
type QueryCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	recGen  map[string]uint64
}

type cacheEntry struct {
	results     []domain.ScoredSegment
	timestamp   time.Time
	recordingID string
	gen         uint64
}

func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		recGen:  make(map[string]uint64),
	}
}

func cacheKey(recordingID, query string, topK int) string {
	data := []byte(recordingID)
	data = append(data, 0)
	data = append(data, query...)
	data = append(data, byte(topK>>8), byte(topK))
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

func (c *QueryCache) Get(recordingID, query string, topK int) ([]domain.ScoredSegment, bool) {
	c.mu.RLock()
	key := cacheKey(recordingID, query, topK)
	entry, exists := c.entries[key]
	currentGen := c.recGen[recordingID]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.gen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.results, true
}

func (c *QueryCache) Put(recordingID, query string, topK int, results []domain.ScoredSegment) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(recordingID, query, topK)

	if _, exists := c.entries[key]; !exists {
		if len(c.entries) >= c.maxSize {
			c.evictOldest()
		}
		c.order = append(c.order, key)
	} else {
		c.moveToEnd(key)
	}

	c.entries[key] = &cacheEntry{
		results:     results,
		timestamp:   time.Now(),
		recordingID: recordingID,
		gen:         c.recGen[recordingID],
	}
}

// InvalidateRecording drops all cached results for one recording.
func (c *QueryCache) InvalidateRecording(recordingID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recGen[recordingID]++
}

func (c *QueryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *QueryCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
