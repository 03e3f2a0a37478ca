package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const (
	RequestKeyPrefix = "request:%d"
	RequestsListKey  = "requests:board"
)

const (
	RequestTTL = 5 * time.Minute
	// The board list is hot and changes often; keep the TTL short so a missed
	// invalidation cannot surface stale urgency ordering for long.
	ListTTL = 30 * time.Second
)

func RequestKey(id uint) string {
	return fmt.Sprintf(RequestKeyPrefix, id)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateRequest(ctx context.Context, id uint) {
	Invalidate(ctx, RequestKey(id))
}

func InvalidateRequestsList(ctx context.Context) {
	Invalidate(ctx, RequestsListKey)
}

// Aside implements the cache-aside pattern: on a hit dest is populated from
// Redis; on a miss fetch is called and its result stored with the given TTL.
// With no Redis client it degrades to calling fetch directly.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if client == nil {
		return fetch()
	}

	if data, err := client.Get(ctx, key).Bytes(); err == nil {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		// Corrupt entry; drop it and fall through to the source of truth.
		client.Del(ctx, key)
	}

	if err := fetch(); err != nil {
		return err
	}

	if data, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
