package store

import (
	"context"
	"sort"
	"sync"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// Memory is an in-process SearchStore and ResultCache.
// Used in tests and when no Redis is configured.
type Memory struct {
	mu      sync.RWMutex
	saved   map[string]domain.SavedSearch
	history []string
	results map[string]domain.SearchResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		saved:   make(map[string]domain.SavedSearch),
		results: make(map[string]domain.SearchResult),
	}
}

// PutSavedSearch implements SearchStore.
func (m *Memory) PutSavedSearch(_ context.Context, s domain.SavedSearch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved[s.ID] = s
	return nil
}

// GetSavedSearch implements SearchStore.
func (m *Memory) GetSavedSearch(_ context.Context, id string) (domain.SavedSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.saved[id]
	if !ok {
		return domain.SavedSearch{}, domain.ErrSavedSearchNotFound
	}
	return s, nil
}

// ListSavedSearches implements SearchStore. Results are newest first.
func (m *Memory) ListSavedSearches(_ context.Context) ([]domain.SavedSearch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.SavedSearch, 0, len(m.saved))
	for _, s := range m.saved {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// DeleteSavedSearch implements SearchStore.
func (m *Memory) DeleteSavedSearch(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.saved[id]; !ok {
		return domain.ErrSavedSearchNotFound
	}
	delete(m.saved, id)
	return nil
}

// SaveHistory implements SearchStore.
func (m *Memory) SaveHistory(_ context.Context, entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append([]string(nil), entries...)
	return nil
}

// LoadHistory implements SearchStore.
func (m *Memory) LoadHistory(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.history...), nil
}

// Get implements ResultCache.
func (m *Memory) Get(_ context.Context, key string) (*domain.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// Set implements ResultCache.
func (m *Memory) Set(_ context.Context, key string, result *domain.SearchResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[key] = *result
	return nil
}

// Ensure interfaces are implemented.
var (
	_ SearchStore = (*Memory)(nil)
	_ ResultCache = (*Memory)(nil)
)
