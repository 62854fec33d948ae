// Package store provides persistence for saved searches, search history and
// the search result cache. Business logic only sees the ports defined here;
// the in-memory implementation backs tests and development, the Redis one
// production.
package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// SearchStore persists saved-search snapshots and the search history.
type SearchStore interface {
	// PutSavedSearch stores a snapshot, replacing any with the same ID.
	PutSavedSearch(ctx context.Context, s domain.SavedSearch) error

	// GetSavedSearch fetches one snapshot by ID.
	// Returns domain.ErrSavedSearchNotFound when absent.
	GetSavedSearch(ctx context.Context, id string) (domain.SavedSearch, error)

	// ListSavedSearches returns all snapshots, newest first.
	ListSavedSearches(ctx context.Context) ([]domain.SavedSearch, error)

	// DeleteSavedSearch removes a snapshot by ID.
	// Returns domain.ErrSavedSearchNotFound when absent.
	DeleteSavedSearch(ctx context.Context, id string) error

	// SaveHistory replaces the stored history entries (most recent first).
	SaveHistory(ctx context.Context, entries []string) error

	// LoadHistory returns the stored history entries (most recent first).
	LoadHistory(ctx context.Context) ([]string, error)
}

// ResultCache caches search results keyed by the full query state.
type ResultCache interface {
	// Get returns the cached result for a key, or (nil, nil) on a miss.
	Get(ctx context.Context, key string) (*domain.SearchResult, error)

	// Set stores a result under a key, subject to the implementation's TTL.
	Set(ctx context.Context, key string, result *domain.SearchResult) error
}

// CacheKey builds a deterministic cache key from the query state. The query
// is JSON-marshaled and hashed, so user-controlled fields cannot bleed into
// each other and two queries share a key only when they would return
// identical results.
func CacheKey(q domain.SearchQuery) string {
	// Marshal cannot fail: SearchQuery holds only plain values, no cycles.
	raw, _ := json.Marshal(q)
	sum := sha256.Sum256(raw)
	return "search:" + hex.EncodeToString(sum[:])
}
