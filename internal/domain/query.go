package domain

import (
	"fmt"
	"regexp"
	"time"
)

// AdvancedSearchLimit is the fixed page size sent on advanced search requests.
const AdvancedSearchLimit = 20

// SearchQuery defines the parameters for a product search request.
type SearchQuery struct {
	// Text is the free-text query (e.g., "riad")
	Text string `json:"q,omitempty"`

	// City restricts results to a single city
	City string `json:"city,omitempty"`

	// Categories restricts results to any of these category slugs (OR semantics)
	Categories []string `json:"categories,omitempty"`

	// PriceRange is the sidebar min/max filter, applied locally after fetch
	PriceRange PriceRange `json:"priceRange"`

	// Advanced holds the filters only the advanced search endpoint honors
	Advanced AdvancedFilters `json:"advanced"`

	// SortBy specifies the result ordering (default: recommended)
	SortBy SortOption `json:"sortBy,omitempty"`

	// Page is the 1-based page to fetch
	Page int `json:"page"`
}

// AdvancedFilters are the structured filters carried by the advanced search
// endpoint. Any non-zero field routes the query to the advanced path.
type AdvancedFilters struct {
	// MinPrice filters out products cheaper than this amount
	MinPrice *float64 `json:"minPrice,omitempty"`

	// MaxPrice filters out products more expensive than this amount
	MaxPrice *float64 `json:"maxPrice,omitempty"`

	// MinRating filters out products rated below this value (0-5)
	MinRating *float64 `json:"minRating,omitempty"`

	// Durations filters by duration buckets (e.g., "half-day", "full-day")
	Durations []string `json:"durations,omitempty"`

	// SelectedDate filters to products available on this date (YYYY-MM-DD)
	SelectedDate string `json:"selectedDate,omitempty"`

	// Location is the center of a geo-radius filter
	Location *GeoPoint `json:"location,omitempty"`

	// LocationName is the display name for the location filter
	LocationName string `json:"locationName,omitempty"`

	// RadiusKm is the geo-radius in kilometers (only with Location)
	RadiusKm float64 `json:"radius,omitempty"`

	// SkipTheLine keeps only skip-the-line products
	SkipTheLine bool `json:"skipTheLine,omitempty"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsZero reports whether no advanced filter is set.
func (a *AdvancedFilters) IsZero() bool {
	return a.MinPrice == nil &&
		a.MaxPrice == nil &&
		a.MinRating == nil &&
		len(a.Durations) == 0 &&
		a.SelectedDate == "" &&
		a.Location == nil &&
		!a.SkipTheLine
}

// NeedsAdvancedSearch decides the request routing: the advanced endpoint is
// used when any advanced filter or a non-empty free-text query is present,
// otherwise the simple city listing is used.
func (q *SearchQuery) NeedsAdvancedSearch() bool {
	return q.Text != "" || !q.Advanced.IsZero()
}

// ActiveFilterCount counts the non-empty, non-default filter fields. It is
// display metadata only and never affects routing or filtering.
func (q *SearchQuery) ActiveFilterCount() int {
	count := 0
	if q.City != "" {
		count++
	}
	if len(q.Categories) > 0 {
		count++
	}
	if q.PriceRange.IsActive() {
		count++
	}
	if q.Advanced.MinPrice != nil || q.Advanced.MaxPrice != nil {
		count++
	}
	if q.Advanced.MinRating != nil {
		count++
	}
	if len(q.Advanced.Durations) > 0 {
		count++
	}
	if q.Advanced.SelectedDate != "" {
		count++
	}
	if q.Advanced.Location != nil {
		count++
	}
	if q.Advanced.SkipTheLine {
		count++
	}
	return count
}

// Validate checks if the search query is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (q *SearchQuery) Validate() error {
	if q.Page < 1 {
		return fmt.Errorf("%w: page must be at least 1, got %d", ErrInvalidRequest, q.Page)
	}

	if q.SortBy != "" && !q.SortBy.IsValid() {
		return fmt.Errorf("%w: sortBy must be one of: recommended, price-low, price-high, rating, popularity; got %q", ErrInvalidRequest, q.SortBy)
	}

	if err := q.PriceRange.Validate(); err != nil {
		return err
	}

	return q.Advanced.Validate()
}

// Validate checks the advanced filter values.
func (a *AdvancedFilters) Validate() error {
	if a.MinPrice != nil && *a.MinPrice < 0 {
		return fmt.Errorf("%w: minPrice cannot be negative", ErrInvalidRequest)
	}
	if a.MaxPrice != nil && *a.MaxPrice < 0 {
		return fmt.Errorf("%w: maxPrice cannot be negative", ErrInvalidRequest)
	}
	if a.MinPrice != nil && a.MaxPrice != nil && *a.MinPrice > *a.MaxPrice {
		return fmt.Errorf("%w: minPrice cannot exceed maxPrice", ErrInvalidRequest)
	}

	if a.MinRating != nil && (*a.MinRating < 0 || *a.MinRating > 5) {
		return fmt.Errorf("%w: minRating must be between 0 and 5, got %v", ErrInvalidRequest, *a.MinRating)
	}

	if a.SelectedDate != "" {
		if !dateRegex.MatchString(a.SelectedDate) {
			return fmt.Errorf("%w: selectedDate must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, a.SelectedDate)
		}
		if _, err := time.Parse("2006-01-02", a.SelectedDate); err != nil {
			return fmt.Errorf("%w: selectedDate is not a valid date: %s", ErrInvalidRequest, a.SelectedDate)
		}
	}

	if a.Location != nil {
		if a.Location.Lat < -90 || a.Location.Lat > 90 {
			return fmt.Errorf("%w: location latitude must be between -90 and 90", ErrInvalidRequest)
		}
		if a.Location.Lng < -180 || a.Location.Lng > 180 {
			return fmt.Errorf("%w: location longitude must be between -180 and 180", ErrInvalidRequest)
		}
		if a.RadiusKm <= 0 {
			return fmt.Errorf("%w: radius must be positive when a location is set", ErrInvalidRequest)
		}
	}

	return nil
}

// SetDefaults applies default values to empty optional fields.
func (q *SearchQuery) SetDefaults() {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.SortBy == "" {
		q.SortBy = SortByRecommended
	}
}

// ClampPage clamps the page into [1, totalPages]; totalPages below 1 clamps
// to 1. totalPages is only known from a catalog response, so the caller's
// first fetch may still carry an out-of-range page; the clamped value is
// what gets refetched and surfaced.
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
