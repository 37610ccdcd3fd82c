package ticket

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Cache is the in-memory mirror of the pass catalog, used to
// short-circuit lookups at the gate. It's implemented as linkedhashmap
// since we look records up by tkt number but also want to keep the
// catalog order the server returned. Key value: Number -> *Record.
//
// The cache never decides anything: every submission still goes to the
// judge endpoint, so stale contents are tolerated. No eviction, the
// catalog is small and rebuilt wholesale.
//
// Unlike most structures here it's touched by multiple goroutines
// (judge submissions backfill, the reload worker replaces), so it
// carries its own lock.
type Cache struct {
	mu      sync.RWMutex
	records *linkedhashmap.Map
}

func ProvideCache() *Cache {
	return &Cache{
		records: linkedhashmap.New(),
	}
}

// LoadAll drops whatever is cached and mirrors the given records.
// Called at startup, on the reload ticker and when the management
// screens report a write.
func (c *Cache) LoadAll(records []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records.Clear()
	for i := range records {
		record := records[i]
		c.records.Put(Number(record.TktNumber), &record)
	}
}

func (c *Cache) Get(number Number) (*Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, ok := c.records.Get(number)
	if !ok {
		return nil, false
	}
	return value.(*Record), true
}

// Upsert inserts or fully replaces one record. Last write wins, no
// field merging.
func (c *Cache) Upsert(number Number, record *Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records.Put(number, record)
}

func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.records.Size()
}
