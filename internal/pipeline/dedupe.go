package pipeline

import "sync"

// seenCache is a thread-safe LRU set of content IDs used to skip bulletins
// the collector re-publishes unchanged on every fetch cycle.
type seenCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*seenEntry
	head       *seenEntry // most recently used
	tail       *seenEntry // least recently used
}

type seenEntry struct {
	key  string
	prev *seenEntry
	next *seenEntry
}

// newSeenCache creates a cache holding up to maxEntries IDs. A maxEntries of
// 0 or less returns nil, which disables deduplication.
func newSeenCache(maxEntries int) *seenCache {
	if maxEntries <= 0 {
		return nil
	}
	return &seenCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*seenEntry),
	}
}

// contains reports whether key was already marked and refreshes its recency.
// A nil cache never reports a duplicate.
func (c *seenCache) contains(key string) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if ok {
		c.moveToFront(e)
	}
	return ok
}

// mark records key as processed. Callers mark only after the bulletin has
// reached the sink, so a redelivery of an unloaded bulletin is not mistaken
// for a duplicate.
func (c *seenCache) mark(key string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.moveToFront(e)
		return
	}

	e := &seenEntry{key: key}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *seenCache) moveToFront(e *seenEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *seenCache) addToFront(e *seenEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *seenCache) remove(e *seenEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *seenCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
