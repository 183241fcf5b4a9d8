package geo

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"github.com/carverauto/netdiag/pkg/models"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds a cache created without an explicit capacity.
const DefaultCacheSize = 1024

// Cache is a bounded LRU of geo answers keyed by address. Concurrent misses
// for the same address share one lookup. Failed lookups are not cached.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	lru      *list.List
	group    singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	addr string
	info models.GeoInfo
}

// CacheStats reports cache effectiveness.
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}

	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*list.Element, capacity),
		lru:      list.New(),
	}
}

// Get returns the cached answer for addr.
func (c *Cache) Get(addr string) (models.GeoInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[addr]
	if !ok {
		return models.GeoInfo{}, false
	}

	c.lru.MoveToFront(elem)

	return elem.Value.(*cacheEntry).info, true
}

// Put stores info for addr, evicting the least recently used entry when full.
func (c *Cache) Put(addr string, info models.GeoInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[addr]; ok {
		elem.Value.(*cacheEntry).info = info
		c.lru.MoveToFront(elem)

		return
	}

	c.entries[addr] = c.lru.PushFront(&cacheEntry{addr: addr, info: info})

	for c.lru.Len() > c.capacity {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).addr)
	}
}

// GetOrLookup returns the cached answer for addr or fills it from lookup.
func (c *Cache) GetOrLookup(ctx context.Context, addr string, lookup Lookup) (models.GeoInfo, error) {
	if info, ok := c.Get(addr); ok {
		c.hits.Add(1)
		return info, nil
	}

	c.misses.Add(1)

	v, err, _ := c.group.Do(addr, func() (interface{}, error) {
		if info, ok := c.Get(addr); ok {
			return info, nil
		}

		info, err := lookup.Lookup(ctx, addr)
		if err != nil {
			return models.GeoInfo{}, err
		}

		c.Put(addr, info)

		return info, nil
	})
	if err != nil {
		return models.GeoInfo{}, err
	}

	return v.(models.GeoInfo), nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lru.Len()
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}
