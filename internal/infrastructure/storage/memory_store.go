package storage

import (
	"context"
	"sort"
	"sync"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"
)

// memoryStore holds entries for the lifetime of the process. Used when no
// database path is configured, and as a fake in tests.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entity.Entry
}

func NewMemoryEntryRepository() repository.EntryRepository {
	return &memoryStore{
		entries: make(map[string]*entity.Entry),
	}
}

func (s *memoryStore) Save(ctx context.Context, entry *entity.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.entries[entry.Link] = &copied
	return nil
}

func (s *memoryStore) List(ctx context.Context, limit int) ([]*entity.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]*entity.Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		copied := *entry
		entries = append(entries, &copied)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Published.After(entries[j].Published)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
