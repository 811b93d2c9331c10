// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// valkey.go provides a Valkey (Redis-compatible) Store so replicated
// frontends share one query cache. Entries expire server-side as a
// backstop: logical invalidation is process-local (the epoch bump), so
// the TTL bounds how long another replica can serve an entry this one
// has already invalidated.
package query

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// valkeyKeyPrefix namespaces query entries in Valkey.
	valkeyKeyPrefix = "query:"

	// valkeyTTLFactor multiplies the cache freshness window to get the
	// hard server-side expiry.
	valkeyTTLFactor = 10
)

// ConnectValkey creates a Valkey client and verifies the connection with
// a ping.
func ConnectValkey(host, port, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("valkey ping: %w", err)
	}

	slog.Info("valkey connected", "addr", fmt.Sprintf("%s:%s", host, port))
	return client, nil
}

// valkeyEntry is the wire form of a cached value in Valkey.
type valkeyEntry struct {
	StoredAt time.Time       `json:"stored_at"`
	Value    json.RawMessage `json:"value"`
}

// ValkeyStore is a Store backed by Valkey. Cache errors are logged and
// degrade to misses; the API remains the source of truth.
type ValkeyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewValkeyStore creates a store whose entries hard-expire after a
// multiple of the freshness window. A zero freshness uses DefaultTTL.
func NewValkeyStore(client *redis.Client, freshness time.Duration) *ValkeyStore {
	if freshness <= 0 {
		freshness = DefaultTTL
	}
	return &ValkeyStore{client: client, ttl: freshness * valkeyTTLFactor}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, time.Time, bool) {
	raw, err := s.client.Get(ctx, valkeyKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, time.Time{}, false
	}
	if err != nil {
		slog.Warn("query cache get error", "key", key, "error", err)
		return nil, time.Time{}, false
	}

	var entry valkeyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		slog.Warn("query cache decode error", "key", key, "error", err)
		return nil, time.Time{}, false
	}
	return entry.Value, entry.StoredAt, true
}

func (s *ValkeyStore) Set(ctx context.Context, key string, value []byte, storedAt time.Time) {
	raw, err := json.Marshal(valkeyEntry{StoredAt: storedAt, Value: value})
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, valkeyKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		slog.Warn("query cache set error", "key", key, "error", err)
	}
}

// DeletePrefix removes every entry of a resource family by scanning for
// the prefix. Called from the debounced invalidation sweep.
func (s *ValkeyStore) DeletePrefix(ctx context.Context, prefix string) {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := s.client.Scan(ctx, cursor, valkeyKeyPrefix+prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("query cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("query cache delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("query cache swept", "prefix", prefix, "deleted", deleted)
	}
}
