// Package usecase contains the business logic for the search and booking
// selection flows. The search side orchestrates catalog calls and applies
// the local compensating filter/sort pass; the selection side manages
// picker sessions.
package usecase

import (
	"math"
	"sort"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// ApplyLocalFilters applies the compensating filter pass to products already
// fetched from the catalog. Two concerns the upstream does not honor
// consistently are re-checked here:
//
//   - Category filter: a product matches if it is in ANY selected category
//     (OR semantics), never all.
//   - Sidebar price range: checked against the comparison price (min of
//     schedule prices, falling back to the direct price); products with no
//     resolvable price are excluded while the range is active.
//
// Does not mutate the input slice.
func ApplyLocalFilters(products []domain.Product, categories domain.CategorySet, priceRange domain.PriceRange) []domain.Product {
	if len(categories) == 0 && !priceRange.IsActive() {
		return products
	}

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !categories.Matches(p) {
			continue
		}
		if !priceRange.Matches(p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// SortProducts sorts products according to the sort option:
//
//   - price-low / price-high sort by the comparison price; priceless
//     products sink to the end in both directions (+Inf ascending, 0
//     descending).
//   - rating sorts by rating descending, missing rating treated as 0.
//   - recommended and popularity keep the server-given order.
//
// Sorting is stable so equal keys keep their upstream order.
// Does not mutate the input slice.
func SortProducts(products []domain.Product, sortBy domain.SortOption) []domain.Product {
	if len(products) <= 1 || sortBy.PreservesServerOrder() {
		return products
	}

	result := make([]domain.Product, len(products))
	copy(result, products)

	switch sortBy {
	case domain.SortByPriceLow:
		sort.SliceStable(result, func(i, j int) bool {
			return sortPrice(result[i], math.Inf(1)) < sortPrice(result[j], math.Inf(1))
		})
	case domain.SortByPriceHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return sortPrice(result[i], 0) > sortPrice(result[j], 0)
		})
	case domain.SortByRating:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Rating > result[j].Rating
		})
	}

	return result
}

// sortPrice returns the comparison price, substituting the given extreme for
// priceless products so they land at the bottom of either ordering.
func sortPrice(p domain.Product, missing float64) float64 {
	price, ok := p.ComparisonPrice()
	if !ok {
		return missing
	}
	return price
}
