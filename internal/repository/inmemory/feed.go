package inmemory

import (
	"context"
	"sync"
	"time"

	annotationsdomain "dealer-app-go/internal/domain/annotations"
)

// InMemoryFeedCache keeps the pending-reminder feed in process memory.
type InMemoryFeedCache struct {
	mu      sync.RWMutex
	item    *feedItem
	version int64
	now     func() time.Time
}

type feedItem struct {
	value     []annotationsdomain.PendingReminder
	expiresAt time.Time
}

func NewInMemoryFeedCache() *InMemoryFeedCache {
	return &InMemoryFeedCache{now: time.Now}
}

func (c *InMemoryFeedCache) GetPending(context.Context) ([]annotationsdomain.PendingReminder, bool) {
	now := c.now()

	c.mu.RLock()
	item := c.item
	c.mu.RUnlock()
	if item == nil {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		if c.item == item {
			c.item = nil
		}
		c.mu.Unlock()
		return nil, false
	}

	return clonePending(item.value), true
}

func (c *InMemoryFeedCache) Version(context.Context) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version, true
}

// SetPending drops the feed when an invalidation happened after version was read.
func (c *InMemoryFeedCache) SetPending(_ context.Context, version int64, items []annotationsdomain.PendingReminder, ttl time.Duration) {
	if items == nil || ttl <= 0 {
		return
	}
	value := clonePending(items)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != version {
		return
	}
	c.item = &feedItem{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

func (c *InMemoryFeedCache) InvalidatePending(context.Context) {
	c.mu.Lock()
	c.item = nil
	c.version++
	c.mu.Unlock()
}

func clonePending(items []annotationsdomain.PendingReminder) []annotationsdomain.PendingReminder {
	cloned := make([]annotationsdomain.PendingReminder, len(items))
	copy(cloned, items)
	return cloned
}
