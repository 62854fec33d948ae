package domain

import "strings"

// SortOption defines the available sorting options for search results.
type SortOption string

// Available sort options.
const (
	// SortByRecommended preserves the server-given order (default)
	SortByRecommended SortOption = "recommended"

	// SortByPriceLow sorts by comparison price ascending (cheapest first)
	SortByPriceLow SortOption = "price-low"

	// SortByPriceHigh sorts by comparison price descending (priciest first)
	SortByPriceHigh SortOption = "price-high"

	// SortByRating sorts by rating descending (best rated first)
	SortByRating SortOption = "rating"

	// SortByPopularity preserves the server-given order, like recommended
	SortByPopularity SortOption = "popularity"
)

// IsValid checks if the sort option is a valid value.
func (s SortOption) IsValid() bool {
	switch s {
	case SortByRecommended, SortByPriceLow, SortByPriceHigh, SortByRating, SortByPopularity:
		return true
	default:
		return false
	}
}

// PreservesServerOrder reports whether the option is a no-op locally because
// the upstream ordering is authoritative for it.
func (s SortOption) PreservesServerOrder() bool {
	return s == SortByRecommended || s == SortByPopularity
}

// ParseSortOption converts a string to a SortOption.
// Returns SortByRecommended if the string is empty or invalid.
func ParseSortOption(s string) SortOption {
	option := SortOption(s)
	if option.IsValid() {
		return option
	}
	return SortByRecommended
}

// PriceRange is the sidebar min/max price filter. It is distinct from the
// advanced minPrice/maxPrice filters: the upstream does not honor it
// consistently, so it is re-applied locally over the comparison price.
type PriceRange struct {
	// Min is the lower bound (inclusive); nil means unbounded
	Min *float64 `json:"min,omitempty"`

	// Max is the upper bound (inclusive); nil means unbounded
	Max *float64 `json:"max,omitempty"`
}

// IsActive reports whether either bound is set.
func (r *PriceRange) IsActive() bool {
	return r != nil && (r.Min != nil || r.Max != nil)
}

// Validate checks the bounds for correctness.
func (r *PriceRange) Validate() error {
	if r == nil {
		return nil
	}
	if r.Min != nil && *r.Min < 0 {
		return wrapInvalid("price range min cannot be negative")
	}
	if r.Max != nil && *r.Max < 0 {
		return wrapInvalid("price range max cannot be negative")
	}
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return wrapInvalid("price range min cannot exceed max")
	}
	return nil
}

// Contains checks if a price falls within the range (inclusive bounds).
func (r *PriceRange) Contains(price float64) bool {
	if r == nil {
		return true
	}
	if r.Min != nil && price < *r.Min {
		return false
	}
	if r.Max != nil && price > *r.Max {
		return false
	}
	return true
}

// Matches applies the range to a product's comparison price. A product with
// no resolvable price is excluded whenever the range is active.
func (r *PriceRange) Matches(p Product) bool {
	if !r.IsActive() {
		return true
	}
	price, ok := p.ComparisonPrice()
	if !ok {
		return false
	}
	return r.Contains(price)
}

// CategorySet is a case-insensitive set of category slugs used for the local
// compensating category filter. A product matches if its category is in any
// of the selected categories (OR semantics).
type CategorySet map[string]struct{}

// NewCategorySet builds a set from the selected category slugs.
// Empty and duplicate entries are dropped.
func NewCategorySet(categories []string) CategorySet {
	if len(categories) == 0 {
		return nil
	}
	set := make(CategorySet, len(categories))
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		set[strings.ToLower(c)] = struct{}{}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Matches reports whether the product's category is in the set.
// A nil (empty) set matches everything.
func (s CategorySet) Matches(p Product) bool {
	if len(s) == 0 {
		return true
	}
	_, ok := s[strings.ToLower(p.Category)]
	return ok
}
