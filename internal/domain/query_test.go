package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchQuery_NeedsAdvancedSearch(t *testing.T) {
	tests := []struct {
		name  string
		query SearchQuery
		want  bool
	}{
		{
			name:  "empty query uses simple listing",
			query: SearchQuery{City: "marrakech", Page: 1},
			want:  false,
		},
		{
			name:  "free text routes to advanced",
			query: SearchQuery{Text: "riad", Page: 1},
			want:  true,
		},
		{
			name:  "min price routes to advanced",
			query: SearchQuery{Advanced: AdvancedFilters{MinPrice: floatPtr(10)}, Page: 1},
			want:  true,
		},
		{
			name:  "skip the line routes to advanced",
			query: SearchQuery{Advanced: AdvancedFilters{SkipTheLine: true}, Page: 1},
			want:  true,
		},
		{
			name:  "selected date routes to advanced",
			query: SearchQuery{Advanced: AdvancedFilters{SelectedDate: "2026-09-01"}, Page: 1},
			want:  true,
		},
		{
			name:  "categories alone stay on the simple path",
			query: SearchQuery{Categories: []string{"food-tours"}, Page: 1},
			want:  false,
		},
		{
			name:  "sidebar price range alone stays on the simple path",
			query: SearchQuery{PriceRange: PriceRange{Min: floatPtr(10)}, Page: 1},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.NeedsAdvancedSearch())
		})
	}
}

func TestSearchQuery_ActiveFilterCount(t *testing.T) {
	assert.Equal(t, 0, (&SearchQuery{}).ActiveFilterCount())

	q := SearchQuery{
		City:       "marrakech",
		Categories: []string{"food-tours"},
		PriceRange: PriceRange{Min: floatPtr(10)},
		Advanced: AdvancedFilters{
			MinPrice:     floatPtr(20),
			MaxPrice:     floatPtr(200),
			MinRating:    floatPtr(4),
			Durations:    []string{"half-day"},
			SelectedDate: "2026-09-01",
			Location:     &GeoPoint{Lat: 31.6, Lng: -8.0},
			RadiusKm:     5,
			SkipTheLine:  true,
		},
	}
	// min+max price count as a single filter.
	assert.Equal(t, 9, q.ActiveFilterCount())
}

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   SearchQuery
		wantErr bool
	}{
		{
			name:    "valid defaults",
			query:   SearchQuery{Page: 1},
			wantErr: false,
		},
		{
			name:    "page zero rejected",
			query:   SearchQuery{Page: 0},
			wantErr: true,
		},
		{
			name:    "unknown sort rejected",
			query:   SearchQuery{Page: 1, SortBy: SortOption("cheapest")},
			wantErr: true,
		},
		{
			name:    "reversed price range rejected",
			query:   SearchQuery{Page: 1, PriceRange: PriceRange{Min: floatPtr(100), Max: floatPtr(10)}},
			wantErr: true,
		},
		{
			name:    "reversed advanced prices rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{MinPrice: floatPtr(100), MaxPrice: floatPtr(10)}},
			wantErr: true,
		},
		{
			name:    "rating above five rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{MinRating: floatPtr(5.5)}},
			wantErr: true,
		},
		{
			name:    "malformed date rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{SelectedDate: "01/09/2026"}},
			wantErr: true,
		},
		{
			name:    "impossible date rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{SelectedDate: "2026-02-30"}},
			wantErr: true,
		},
		{
			name:    "location without radius rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{Location: &GeoPoint{Lat: 31.6, Lng: -8.0}}},
			wantErr: true,
		},
		{
			name:    "out of range latitude rejected",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{Location: &GeoPoint{Lat: 91, Lng: 0}, RadiusKm: 5}},
			wantErr: true,
		},
		{
			name:    "valid location",
			query:   SearchQuery{Page: 1, Advanced: AdvancedFilters{Location: &GeoPoint{Lat: 31.6, Lng: -8.0}, RadiusKm: 5}},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSearchQuery_SetDefaults(t *testing.T) {
	q := SearchQuery{}
	q.SetDefaults()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, SortByRecommended, q.SortBy)

	q = SearchQuery{Page: 3, SortBy: SortByRating}
	q.SetDefaults()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, SortByRating, q.SortBy)
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalPages int
		want       int
	}{
		{name: "within range", page: 3, totalPages: 10, want: 3},
		{name: "below one", page: 0, totalPages: 10, want: 1},
		{name: "negative", page: -5, totalPages: 10, want: 1},
		{name: "above total", page: 15, totalPages: 10, want: 10},
		{name: "at total", page: 10, totalPages: 10, want: 10},
		{name: "zero total pages clamps to one", page: 5, totalPages: 0, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.page, tt.totalPages))
		})
	}
}
