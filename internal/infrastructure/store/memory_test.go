package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

func savedSearchFixture(id string, createdAt time.Time) domain.SavedSearch {
	return domain.SavedSearch{
		ID:        id,
		Name:      "search " + id,
		Query:     domain.SearchQuery{Text: "kayak", Page: 2, SortBy: domain.SortByPriceLow},
		CreatedAt: createdAt,
	}
}

func TestMemory_SavedSearch_PutAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s := savedSearchFixture("ss-1", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, m.PutSavedSearch(ctx, s))

	got, err := m.GetSavedSearch(ctx, "ss-1")
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestMemory_SavedSearch_PutReplacesSameID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	s := savedSearchFixture("ss-1", time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, m.PutSavedSearch(ctx, s))

	s.Name = "renamed"
	require.NoError(t, m.PutSavedSearch(ctx, s))

	got, err := m.GetSavedSearch(ctx, "ss-1")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)

	list, err := m.ListSavedSearches(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1, "replacing should not create a second entry")
}

func TestMemory_SavedSearch_GetMissing(t *testing.T) {
	m := NewMemory()

	_, err := m.GetSavedSearch(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSavedSearchNotFound)
}

func TestMemory_SavedSearch_ListNewestFirst(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, m.PutSavedSearch(ctx, savedSearchFixture("old", base)))
	require.NoError(t, m.PutSavedSearch(ctx, savedSearchFixture("newest", base.Add(2*time.Hour))))
	require.NoError(t, m.PutSavedSearch(ctx, savedSearchFixture("middle", base.Add(time.Hour))))

	list, err := m.ListSavedSearches(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].ID)
	assert.Equal(t, "middle", list[1].ID)
	assert.Equal(t, "old", list[2].ID)
}

func TestMemory_SavedSearch_ListEmpty(t *testing.T) {
	m := NewMemory()

	list, err := m.ListSavedSearches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestMemory_SavedSearch_Delete(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.PutSavedSearch(ctx, savedSearchFixture("ss-1", time.Now())))
	require.NoError(t, m.DeleteSavedSearch(ctx, "ss-1"))

	_, err := m.GetSavedSearch(ctx, "ss-1")
	assert.ErrorIs(t, err, domain.ErrSavedSearchNotFound)
}

func TestMemory_SavedSearch_DeleteMissing(t *testing.T) {
	m := NewMemory()

	err := m.DeleteSavedSearch(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrSavedSearchNotFound)
}

func TestMemory_History_SaveAndLoad(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	entries := []string{"marrakech food tour", "kayak", "desert camp"}
	require.NoError(t, m.SaveHistory(ctx, entries))

	got, err := m.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestMemory_History_SaveReplaces(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveHistory(ctx, []string{"first"}))
	require.NoError(t, m.SaveHistory(ctx, []string{"second", "first"}))

	got, err := m.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"second", "first"}, got)
}

func TestMemory_History_LoadIsACopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.SaveHistory(ctx, []string{"a", "b"}))

	got, err := m.LoadHistory(ctx)
	require.NoError(t, err)
	got[0] = "mutated"

	again, err := m.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, again, "caller mutation must not leak into the store")
}

func TestMemory_History_EmptyStore(t *testing.T) {
	m := NewMemory()

	got, err := m.LoadHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemory_ResultCache_MissReturnsNil(t *testing.T) {
	m := NewMemory()

	got, err := m.Get(context.Background(), "search:kayak")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_ResultCache_SetAndGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	result := &domain.SearchResult{
		Metadata: domain.SearchMetadata{TotalResults: 2, Page: 1, TotalPages: 1},
		Products: []domain.Product{{ID: "tour-1"}, {ID: "tour-2"}},
	}
	require.NoError(t, m.Set(ctx, "search:kayak", result))

	got, err := m.Get(ctx, "search:kayak")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Metadata.TotalResults)
	assert.Len(t, got.Products, 2)
}

func TestMemory_ResultCache_GetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "k", &domain.SearchResult{
		Metadata: domain.SearchMetadata{TotalResults: 1},
	}))

	first, err := m.Get(ctx, "k")
	require.NoError(t, err)
	first.Metadata.TotalResults = 99

	second, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Metadata.TotalResults, "mutating a hit must not poison the cache")
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("ss-%d", n)
			_ = m.PutSavedSearch(ctx, savedSearchFixture(id, time.Now()))
			_, _ = m.ListSavedSearches(ctx)
			_ = m.SaveHistory(ctx, []string{id})
			_, _ = m.LoadHistory(ctx)
			_ = m.Set(ctx, id, &domain.SearchResult{})
			_, _ = m.Get(ctx, id)
		}(i)
	}
	wg.Wait()

	list, err := m.ListSavedSearches(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 50)
}

func TestCacheKey_DistinguishesQueries(t *testing.T) {
	min := 20.0
	max := 80.0
	rating := 4.5

	base := domain.SearchQuery{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended}

	variants := []domain.SearchQuery{
		base,
		{Text: "kayak", City: "agadir", Page: 1, SortBy: domain.SortByRecommended},
		{Text: "kayak", City: "marrakech", Page: 2, SortBy: domain.SortByRecommended},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByPriceLow},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended,
			Categories: []string{"food-tours"}},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended,
			PriceRange: domain.PriceRange{Min: &min, Max: &max}},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended,
			Advanced: domain.AdvancedFilters{MinRating: &rating}},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended,
			Advanced: domain.AdvancedFilters{SkipTheLine: true}},
		{Text: "kayak", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended,
			Advanced: domain.AdvancedFilters{SelectedDate: "2026-09-15"}},
	}

	seen := make(map[string]int)
	for i, q := range variants {
		key := CacheKey(q)
		if prev, dup := seen[key]; dup {
			t.Fatalf("variants %d and %d collide on key %q", prev, i, key)
		}
		seen[key] = i
	}
}

func TestCacheKey_FieldBoundariesDoNotBleed(t *testing.T) {
	// The two queries concatenate to the same string; they must still get
	// distinct keys because they route differently and return different
	// results.
	a := domain.SearchQuery{Text: "food:tours", City: "marrakech", Page: 1, SortBy: domain.SortByRecommended}
	b := domain.SearchQuery{Text: "food", City: "tours:marrakech", Page: 1, SortBy: domain.SortByRecommended}

	assert.NotEqual(t, CacheKey(a), CacheKey(b))
}

func TestCacheKey_Deterministic(t *testing.T) {
	min := 10.0
	q := domain.SearchQuery{
		Text:       "desert camp",
		City:       "merzouga",
		Page:       3,
		SortBy:     domain.SortByRating,
		Categories: []string{"adventure", "nature"},
		PriceRange: domain.PriceRange{Min: &min},
	}

	assert.Equal(t, CacheKey(q), CacheKey(q))
	assert.True(t, strings.HasPrefix(CacheKey(q), "search:"), "keys share the search namespace")
}
