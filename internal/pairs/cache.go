package pairs

const (
	DefaultCapacity = 200
	// CompactCapacity is the smaller bound used by memory constrained hosts
	CompactCapacity = 100
)

// Cache maps the normalized text of either side of a translation to the
// other side. Both directions are stored as independent entries and evicted
// in key insertion order, so a pair can lose one direction before the other.
//
// Not safe for concurrent use; the orchestrator loop is the only caller.
type Cache struct {
	capacity int
	entries  map[string]string
	order    []string
}

// NewCache creates a cache bounded at capacity keys; non-positive means DefaultCapacity
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]string, capacity),
		order:    make([]string, 0, capacity),
	}
}

// Upsert records source and target as a pair. Empty sides and pairs that
// normalize to the same key are ignored.
func (c *Cache) Upsert(source, target string) {
	sourceKey, targetKey := Normalize(source), Normalize(target)
	if sourceKey == "" || targetKey == "" || sourceKey == targetKey {
		return
	}
	c.put(sourceKey, target)
	c.put(targetKey, source)
}

func (c *Cache) put(key, value string) {
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = value

	for len(c.order) > c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Lookup finds the paired text for a normalized source. It tries an exact
// key, then a loose key match, then a fuzzy match, and never returns a value
// that is itself equivalent to the query.
func (c *Cache) Lookup(normalizedSource string) (string, bool) {
	query := Normalize(normalizedSource)
	if query == "" {
		return "", false
	}

	if v, ok := c.entries[query]; ok && !LooksEquivalent(v, query) {
		return v, true
	}

	queryLoose := LooseKey(query)
	if queryLoose == "" {
		return "", false
	}

	for _, key := range c.order {
		if LooseKey(key) != queryLoose {
			continue
		}
		if v := c.entries[key]; !LooksEquivalent(v, query) {
			return v, true
		}
	}

	for _, key := range c.order {
		if !LooksEquivalent(query, key) {
			continue
		}
		if v := c.entries[key]; !LooksEquivalent(v, query) {
			return v, true
		}
	}

	return "", false
}

func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) Capacity() int {
	return c.capacity
}
