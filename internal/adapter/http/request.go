// Package http provides the HTTP handler layer for the tour search API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"strconv"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
)

// SearchRequest carries the query parameters of GET /api/v1/search.
// Numeric filters arrive as strings so absence and malformation can be told
// apart and reported per field.
type SearchRequest struct {
	// Q is the free-text query
	Q string `query:"q"`

	// City restricts results to a single city
	City string `query:"city"`

	// Categories restricts results to any of these category slugs
	Categories []string `query:"category"`

	// RangeMin / RangeMax are the sidebar price range bounds
	RangeMin string `query:"rangeMin"`
	RangeMax string `query:"rangeMax"`

	// MinPrice / MaxPrice / MinRating are advanced filters
	MinPrice  string `query:"minPrice"`
	MaxPrice  string `query:"maxPrice"`
	MinRating string `query:"minRating"`

	// Durations are advanced duration buckets
	Durations []string `query:"duration"`

	// SelectedDate is the advanced availability date (YYYY-MM-DD)
	SelectedDate string `query:"selectedDate"`

	// Lat / Lng / Radius describe the advanced geo filter
	Lat    string `query:"lat"`
	Lng    string `query:"lng"`
	Radius string `query:"radius"`

	// LocationName is the display name for the geo filter
	LocationName string `query:"locationName"`

	// SkipTheLine keeps only skip-the-line products when "true"
	SkipTheLine bool `query:"skipTheLine"`

	// SortBy is one of: recommended, price-low, price-high, rating, popularity
	SortBy string `query:"sortBy"`

	// Page is the 1-based page to fetch (default 1)
	Page int `query:"page"`
}

// CreateSelectionRequest is the body of POST /api/v1/selections.
type CreateSelectionRequest struct {
	// ProductID is the product to open a selection session for
	ProductID string `json:"productId"`
}

// DateRequest is the body of the click and hover endpoints.
type DateRequest struct {
	// Date is a calendar day in YYYY-MM-DD format
	Date string `json:"date"`
}

// NavigateRequest is the body of the month navigation endpoint.
type NavigateRequest struct {
	// Delta is the number of months to move, negative for previous
	Delta int `json:"delta"`
}

// SlotRequest is the body of the time slot endpoint.
type SlotRequest struct {
	// StartTime is the slot start in HH:MM format
	StartTime string `json:"startTime"`

	// EndTime is the slot end in HH:MM format
	EndTime string `json:"endTime"`
}

// SaveSearchRequest is the body of POST /api/v1/saved-searches.
type SaveSearchRequest struct {
	// Name is the user-chosen label for the snapshot
	Name string `json:"name"`

	// Query is the full query state to snapshot
	Query domain.SearchQuery `json:"query"`
}

// HistoryRequest is the body of POST /api/v1/history.
type HistoryRequest struct {
	// Query is the free-text query to record
	Query string `json:"query"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request and returns any validation errors.
// Full semantic validation (bound ordering, ranges) happens on the domain
// query; this pass only rejects values that cannot be converted at all.
func (r *SearchRequest) Validate() error {
	errs := &ValidationErrors{}

	checkFloat(errs, "rangeMin", r.RangeMin)
	checkFloat(errs, "rangeMax", r.RangeMax)
	checkFloat(errs, "minPrice", r.MinPrice)
	checkFloat(errs, "maxPrice", r.MaxPrice)
	checkFloat(errs, "minRating", r.MinRating)
	checkFloat(errs, "lat", r.Lat)
	checkFloat(errs, "lng", r.Lng)
	checkFloat(errs, "radius", r.Radius)

	if (r.Lat == "") != (r.Lng == "") {
		errs.Add("lat", "lat and lng must be provided together")
	}

	if r.Page < 0 {
		errs.Add("page", "page cannot be negative")
	}

	if r.SortBy != "" && !domain.SortOption(r.SortBy).IsValid() {
		errs.Add("sortBy", "sortBy must be one of: recommended, price-low, price-high, rating, popularity")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates a date payload.
func (r *DateRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Date == "" {
		errs.Add("date", "date is required")
	} else if _, err := timeutil.ParseDate(r.Date); err != nil {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates a slot payload.
func (r *SlotRequest) Validate() error {
	errs := &ValidationErrors{}
	if !timeutil.ValidClockTime(r.StartTime) {
		errs.Add("startTime", "startTime must be in HH:MM format")
	}
	if !timeutil.ValidClockTime(r.EndTime) {
		errs.Add("endTime", "endTime must be in HH:MM format")
	}
	if !errs.HasErrors() && !timeutil.ClockTimeBefore(r.StartTime, r.EndTime) {
		errs.Add("startTime", "startTime must be earlier than endTime")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates a create-selection payload.
func (r *CreateSelectionRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.ProductID == "" {
		errs.Add("productId", "productId is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates a save-search payload.
func (r *SaveSearchRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Name == "" {
		errs.Add("name", "name is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Validate validates a history payload.
func (r *HistoryRequest) Validate() error {
	errs := &ValidationErrors{}
	if r.Query == "" {
		errs.Add("query", "query is required")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// checkFloat records a field error when a non-empty value is not numeric.
func checkFloat(errs *ValidationErrors, field, value string) {
	if value == "" {
		return
	}
	if _, err := strconv.ParseFloat(value, 64); err != nil {
		errs.Add(field, field+" must be a number")
	}
}
