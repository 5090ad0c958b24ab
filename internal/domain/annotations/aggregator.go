package annotations

import (
	"context"
	"sort"
	"time"
)

// Aggregator merges the pending reminders of every owner kind into one feed
// ordered by due time.
type Aggregator struct {
	stores []Store
	cache  FeedCache
	ttl    time.Duration
}

func NewAggregator(stores []Store, cache FeedCache, ttl time.Duration) *Aggregator {
	if cache == nil {
		cache = noopFeedCache{}
	}
	ordered := make([]Store, len(stores))
	copy(ordered, stores)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind().order() < ordered[j].Kind().order()
	})
	return &Aggregator{stores: ordered, cache: cache, ttl: ttl}
}

func (a *Aggregator) ListPending(ctx context.Context) ([]PendingReminder, error) {
	if items, ok := a.cache.GetPending(ctx); ok {
		return items, nil
	}
	version, cacheable := a.cache.Version(ctx)

	feed := make([]PendingReminder, 0)
	for _, store := range a.stores {
		items, err := store.ListPending(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			item.Kind = store.Kind()
			item.Label = labelFor(item)
			item.DueAt = item.DueAt.UTC()
			feed = append(feed, item)
		}
	}

	sort.SliceStable(feed, func(i, j int) bool {
		left, right := feed[i], feed[j]
		if !left.DueAt.Equal(right.DueAt) {
			return left.DueAt.Before(right.DueAt)
		}
		if left.Kind != right.Kind {
			return left.Kind.order() < right.Kind.order()
		}
		return left.ID < right.ID
	})

	if cacheable {
		a.cache.SetPending(ctx, version, feed, a.ttl)
	}
	return feed, nil
}

func labelFor(item PendingReminder) string {
	if item.Subject == "" {
		return item.Kind.Label()
	}
	return item.Kind.Label() + " · " + item.Subject
}
