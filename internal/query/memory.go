// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package query

import (
	"context"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultMemoryEntries bounds the in-process cache. List pages and
// detail records are small; the LRU exists to cap memory, not to tune
// hit rates.
const defaultMemoryEntries = 1024

type memoryEntry struct {
	value    []byte
	storedAt time.Time
}

// MemoryStore is the in-process Store used when no Valkey instance is
// configured. Safe for concurrent use.
type MemoryStore struct {
	entries *lru.Cache[string, memoryEntry]
}

// NewMemoryStore creates an LRU-bounded store. size <= 0 uses the
// default capacity.
func NewMemoryStore(size int) *MemoryStore {
	if size <= 0 {
		size = defaultMemoryEntries
	}
	// lru.New only fails on a non-positive size.
	entries, _ := lru.New[string, memoryEntry](size)
	return &MemoryStore{entries: entries}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, time.Time, bool) {
	entry, ok := s.entries.Get(key)
	if !ok {
		return nil, time.Time{}, false
	}
	return entry.value, entry.storedAt, true
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, storedAt time.Time) {
	s.entries.Add(key, memoryEntry{value: value, storedAt: storedAt})
}

func (s *MemoryStore) DeletePrefix(_ context.Context, prefix string) {
	for _, key := range s.entries.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.entries.Remove(key)
		}
	}
}
