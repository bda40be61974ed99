package store

import (
	"context"
	"sync"
	"time"

	"github.com/younesh11/url-shortner/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortener.Code]*shortener.Link
	hashes map[shortener.URLHash]shortener.Code
}

// NewMemoryStore creates a new in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links:  make(map[shortener.Code]*shortener.Link),
		hashes: make(map[shortener.URLHash]shortener.Code),
	}
}

func (m *MemoryStore) Save(_ context.Context, link *shortener.Link) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.links[link.Code]; exists {
		return shortener.ErrCodeTaken
	}

	stored := *link
	m.links[link.Code] = &stored

	if link.URLHash != "" {
		m.hashes[link.URLHash] = link.Code
	}

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	copied := *link

	return &copied, nil
}

func (m *MemoryStore) GetActiveByCode(ctx context.Context, code shortener.Code) (*shortener.Link, error) {
	link, err := m.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if link.Expired(time.Now().UTC()) {
		return nil, shortener.ErrNotFound
	}

	return link, nil
}

func (m *MemoryStore) GetByHash(_ context.Context, hash shortener.URLHash) (*shortener.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	code, ok := m.hashes[hash]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	link, ok := m.links[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	copied := *link

	return &copied, nil
}

func (m *MemoryStore) IncrementClicks(_ context.Context, code shortener.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortener.ErrNotFound
	}

	link.ClickCount++

	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()

	var deleted int64

	for code, link := range m.links {
		if link.Expired(now) {
			delete(m.links, code)

			if link.URLHash != "" {
				delete(m.hashes, link.URLHash)
			}

			deleted++
		}
	}

	return deleted, nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
