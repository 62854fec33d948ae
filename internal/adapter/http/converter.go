package http

import (
	"strconv"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// toDomainQuery converts a validated SearchRequest into a domain query.
// Validate must have run first; conversion errors here are treated as absent
// values.
func toDomainQuery(r *SearchRequest) domain.SearchQuery {
	query := domain.SearchQuery{
		Text:       r.Q,
		City:       r.City,
		Categories: r.Categories,
		PriceRange: domain.PriceRange{
			Min: parseOptionalFloat(r.RangeMin),
			Max: parseOptionalFloat(r.RangeMax),
		},
		Advanced: domain.AdvancedFilters{
			MinPrice:     parseOptionalFloat(r.MinPrice),
			MaxPrice:     parseOptionalFloat(r.MaxPrice),
			MinRating:    parseOptionalFloat(r.MinRating),
			Durations:    r.Durations,
			SelectedDate: r.SelectedDate,
			LocationName: r.LocationName,
			SkipTheLine:  r.SkipTheLine,
		},
		SortBy: domain.SortOption(r.SortBy),
		Page:   r.Page,
	}

	if r.Lat != "" && r.Lng != "" {
		query.Advanced.Location = &domain.GeoPoint{
			Lat: mustFloat(r.Lat),
			Lng: mustFloat(r.Lng),
		}
		if radius := parseOptionalFloat(r.Radius); radius != nil {
			query.Advanced.RadiusKm = *radius
		}
	}

	query.SetDefaults()
	return query
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
