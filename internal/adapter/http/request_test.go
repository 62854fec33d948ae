package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

func TestSearchRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       SearchRequest
		wantField string
	}{
		{name: "empty request is valid", req: SearchRequest{}},
		{name: "numeric bounds are valid", req: SearchRequest{RangeMin: "10", RangeMax: "99.5"}},
		{name: "non-numeric rangeMin", req: SearchRequest{RangeMin: "cheap"}, wantField: "rangeMin"},
		{name: "non-numeric minRating", req: SearchRequest{MinRating: "four"}, wantField: "minRating"},
		{name: "lat without lng", req: SearchRequest{Lat: "31.6"}, wantField: "lat"},
		{name: "lng without lat", req: SearchRequest{Lng: "-8.0"}, wantField: "lat"},
		{name: "lat and lng together", req: SearchRequest{Lat: "31.6", Lng: "-8.0"}},
		{name: "negative page", req: SearchRequest{Page: -1}, wantField: "page"},
		{name: "unknown sort", req: SearchRequest{SortBy: "cheapest"}, wantField: "sortBy"},
		{name: "valid sort", req: SearchRequest{SortBy: "price-high"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verrs *ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.wantField)
		})
	}
}

func TestToDomainQuery(t *testing.T) {
	req := SearchRequest{
		Q:            "riad",
		City:         "marrakech",
		Categories:   []string{"food-tours"},
		RangeMin:     "10",
		RangeMax:     "100",
		MinPrice:     "20",
		MinRating:    "4.5",
		Durations:    []string{"half-day"},
		SelectedDate: "2026-09-01",
		Lat:          "31.63",
		Lng:          "-8.01",
		Radius:       "5",
		SkipTheLine:  true,
		SortBy:       "rating",
		Page:         3,
	}
	require.NoError(t, req.Validate())

	query := toDomainQuery(&req)

	assert.Equal(t, "riad", query.Text)
	assert.Equal(t, "marrakech", query.City)
	require.NotNil(t, query.PriceRange.Min)
	assert.Equal(t, 10.0, *query.PriceRange.Min)
	require.NotNil(t, query.PriceRange.Max)
	assert.Equal(t, 100.0, *query.PriceRange.Max)
	require.NotNil(t, query.Advanced.MinPrice)
	assert.Equal(t, 20.0, *query.Advanced.MinPrice)
	assert.Nil(t, query.Advanced.MaxPrice)
	require.NotNil(t, query.Advanced.MinRating)
	assert.Equal(t, 4.5, *query.Advanced.MinRating)
	assert.Equal(t, "2026-09-01", query.Advanced.SelectedDate)
	require.NotNil(t, query.Advanced.Location)
	assert.Equal(t, 31.63, query.Advanced.Location.Lat)
	assert.Equal(t, 5.0, query.Advanced.RadiusKm)
	assert.True(t, query.Advanced.SkipTheLine)
	assert.Equal(t, domain.SortByRating, query.SortBy)
	assert.Equal(t, 3, query.Page)
}

func TestToDomainQuery_Defaults(t *testing.T) {
	query := toDomainQuery(&SearchRequest{})

	assert.Equal(t, 1, query.Page)
	assert.Equal(t, domain.SortByRecommended, query.SortBy)
	assert.Nil(t, query.PriceRange.Min)
	assert.Nil(t, query.Advanced.Location)
	assert.True(t, query.Advanced.IsZero())
}

func TestDateRequest_Validate(t *testing.T) {
	assert.NoError(t, (&DateRequest{Date: "2026-09-15"}).Validate())
	assert.Error(t, (&DateRequest{}).Validate())
	assert.Error(t, (&DateRequest{Date: "15/09/2026"}).Validate())
	assert.Error(t, (&DateRequest{Date: "2026-13-40"}).Validate())
}

func TestSlotRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SlotRequest{StartTime: "09:00", EndTime: "17:00"}).Validate())
	assert.Error(t, (&SlotRequest{StartTime: "9am", EndTime: "17:00"}).Validate())
	assert.Error(t, (&SlotRequest{StartTime: "09:00", EndTime: "25:00"}).Validate())
	assert.Error(t, (&SlotRequest{StartTime: "17:00", EndTime: "09:00"}).Validate())
	assert.Error(t, (&SlotRequest{StartTime: "09:00", EndTime: "09:00"}).Validate())
}

func TestCreateSelectionRequest_Validate(t *testing.T) {
	assert.NoError(t, (&CreateSelectionRequest{ProductID: "tour-1"}).Validate())
	assert.Error(t, (&CreateSelectionRequest{}).Validate())
}

func TestSaveSearchRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SaveSearchRequest{Name: "x"}).Validate())
	assert.Error(t, (&SaveSearchRequest{}).Validate())
}

func TestHistoryRequest_Validate(t *testing.T) {
	assert.NoError(t, (&HistoryRequest{Query: "medina"}).Validate())
	assert.Error(t, (&HistoryRequest{}).Validate())
}

func TestValidationErrors(t *testing.T) {
	errs := &ValidationErrors{}
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "validation failed", errs.Error())

	errs.Add("page", "page cannot be negative")
	errs.Add("sortBy", "unknown sort option")

	assert.True(t, errs.HasErrors())
	assert.Equal(t, "page cannot be negative", errs.Error())
	assert.Equal(t, map[string]string{
		"page":   "page cannot be negative",
		"sortBy": "unknown sort option",
	}, errs.ToMap())
}
