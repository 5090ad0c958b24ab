package annotations

import (
	"context"
	"time"
)

// FeedCache holds the aggregated pending feed between mutations.
//
// Every InvalidatePending bumps the cache version. A feed read before a bump
// must not be stored after it, so SetPending only writes when the version
// still matches the one returned by Version before the stores were read.
type FeedCache interface {
	GetPending(ctx context.Context) ([]PendingReminder, bool)
	// Version reports the current version; ok is false when the cache
	// cannot tell, and the caller must then skip SetPending.
	Version(ctx context.Context) (version int64, ok bool)
	SetPending(ctx context.Context, version int64, items []PendingReminder, ttl time.Duration)
	InvalidatePending(ctx context.Context)
}

type noopFeedCache struct{}

func (noopFeedCache) GetPending(context.Context) ([]PendingReminder, bool) {
	return nil, false
}

func (noopFeedCache) Version(context.Context) (int64, bool) {
	return 0, false
}

func (noopFeedCache) SetPending(context.Context, int64, []PendingReminder, time.Duration) {}

func (noopFeedCache) InvalidatePending(context.Context) {}

// NoopFeedCache disables feed caching.
func NoopFeedCache() FeedCache {
	return noopFeedCache{}
}
