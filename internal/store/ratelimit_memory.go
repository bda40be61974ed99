package store

import (
	"context"
	"sync"
	"time"
)

// RateLimitMemoryStore is an in-memory implementation of ratelimit.Store.
// It keeps the raw request timestamps per key, ordered by arrival.
type RateLimitMemoryStore struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimitMemoryStore creates a new in-memory rate limit store.
func NewRateLimitMemoryStore() *RateLimitMemoryStore {
	return &RateLimitMemoryStore{
		requests: make(map[string][]time.Time),
	}
}

func (s *RateLimitMemoryStore) Record(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-window)

	// Timestamps are appended under the lock, so the slice stays sorted
	// and pruning only needs to skip the expired prefix.
	timestamps := s.requests[key]
	start := 0
	for start < len(timestamps) && !timestamps[start].After(cutoff) {
		start++
	}

	timestamps = append(timestamps[start:], now)
	s.requests[key] = timestamps

	return int64(len(timestamps)), nil
}
