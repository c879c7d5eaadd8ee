// Package cache implements a small Redis-backed read cache for event
// snapshots. It is strictly best-effort: a nil *EventCache or any Redis
// failure degrades to the database path without surfacing errors.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eventtix/eventtix/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	eventKeyPrefix = "event:"
	listKey        = "events:all"
)

// EventCache caches individual events and the full event listing.
type EventCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewEventCache constructs an EventCache with the given entry TTL.
func NewEventCache(rdb *redis.Client, ttl time.Duration) *EventCache {
	return &EventCache{rdb: rdb, ttl: ttl}
}

// GetEvent returns a cached event and true on a hit.
func (c *EventCache) GetEvent(ctx context.Context, id string) (*model.Event, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, eventKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var e model.Event
	if err := json.Unmarshal(data, &e); err != nil {
		logrus.WithError(err).Warn("corrupt event cache entry, dropping")
		c.rdb.Del(ctx, eventKeyPrefix+id)
		return nil, false
	}
	return &e, true
}

// SetEvent stores an event snapshot under its id.
func (c *EventCache) SetEvent(ctx context.Context, e *model.Event) {
	if c == nil {
		return
	}
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, eventKeyPrefix+e.ID, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("event cache set failed")
	}
}

// GetList returns the cached event listing and true on a hit.
func (c *EventCache) GetList(ctx context.Context) ([]model.Event, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, listKey).Bytes()
	if err != nil {
		return nil, false
	}
	var events []model.Event
	if err := json.Unmarshal(data, &events); err != nil {
		c.rdb.Del(ctx, listKey)
		return nil, false
	}
	return events, true
}

// SetList stores the full event listing.
func (c *EventCache) SetList(ctx context.Context, events []model.Event) {
	if c == nil {
		return
	}
	data, err := json.Marshal(events)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, listKey, data, c.ttl).Err(); err != nil {
		logrus.WithError(err).Debug("event list cache set failed")
	}
}

// Invalidate drops the cached snapshot for one event plus the listing.
// Called after every capacity mutation so readers never see stale counters
// beyond the entry TTL.
func (c *EventCache) Invalidate(ctx context.Context, eventID string) {
	if c == nil {
		return
	}
	if err := c.rdb.Del(ctx, eventKeyPrefix+eventID, listKey).Err(); err != nil {
		logrus.WithError(err).Debug("event cache invalidate failed")
	}
}
