package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dealer-app-go/internal/config"
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	"dealer-app-go/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
)

const (
	pendingFeedKey    = "reminders:pending"
	pendingVersionKey = "reminders:pending:version"
)

var errStaleFeed = errors.New("feed version changed")

func Open(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// FeedCache stores the pending-reminder feed as JSON under one key. Redis
// failures are logged and treated as a miss.
type FeedCache struct {
	client     goredis.UniversalClient
	key        string
	versionKey string
	log        logger.Logger
}

func NewFeedCache(client goredis.UniversalClient, keyPrefix string, log logger.Logger) *FeedCache {
	return &FeedCache{
		client:     client,
		key:        keyPrefix + pendingFeedKey,
		versionKey: keyPrefix + pendingVersionKey,
		log:        log,
	}
}

func (c *FeedCache) GetPending(ctx context.Context) ([]annotationsdomain.PendingReminder, bool) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			c.log.Warn("feed cache read failed", "key", c.key, "err", err)
		}
		return nil, false
	}

	var items []annotationsdomain.PendingReminder
	if err := json.Unmarshal(payload, &items); err != nil {
		c.log.Warn("feed cache payload invalid", "key", c.key, "err", err)
		return nil, false
	}
	if items == nil {
		items = []annotationsdomain.PendingReminder{}
	}
	return items, true
}

func (c *FeedCache) Version(ctx context.Context) (int64, bool) {
	version, err := readVersion(ctx, c.client, c.versionKey)
	if err != nil {
		c.log.Warn("feed cache version read failed", "key", c.versionKey, "err", err)
		return 0, false
	}
	return version, true
}

// SetPending writes the feed under WATCH on the version key, so an
// invalidation racing the write aborts it.
func (c *FeedCache) SetPending(ctx context.Context, version int64, items []annotationsdomain.PendingReminder, ttl time.Duration) {
	if items == nil || ttl <= 0 {
		return
	}

	payload, err := json.Marshal(items)
	if err != nil {
		c.log.Warn("feed cache encode failed", "err", err)
		return
	}

	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := readVersion(ctx, tx, c.versionKey)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleFeed
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, c.key, payload, ttl)
			return nil
		})
		return err
	}, c.versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleFeed), errors.Is(err, goredis.TxFailedErr):
		c.log.Debug("feed cache write skipped, feed changed while reading", "key", c.key)
	default:
		c.log.Warn("feed cache write failed", "key", c.key, "err", err)
	}
}

func (c *FeedCache) InvalidatePending(ctx context.Context) {
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	if err != nil {
		c.log.Warn("feed cache invalidation failed", "key", c.key, "err", err)
	}
}

type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

func readVersion(ctx context.Context, client getter, key string) (int64, error) {
	version, err := client.Get(ctx, key).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return version, err
}
