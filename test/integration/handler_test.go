package integration

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/test/mock"
)

// TestHandler_Health verifies the bare health endpoint.
func TestHandler_Health(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	resp := ts.Health()

	assert.Equal(t, http.StatusOK, resp.Code)
	body, err := resp.DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

// TestHandler_Search_SimpleListing tests a city-only search end to end.
func TestHandler_Search_SimpleListing(t *testing.T) {
	catalog := mock.NewCatalog().WithProducts(mock.SampleProducts("marrakech", 3))
	ts := NewTestServer(catalog)

	resp := ts.Search(url.Values{"city": {"marrakech"}}, "")

	assert.Equal(t, http.StatusOK, resp.Code)

	var result domain.SearchResult
	require.NoError(t, resp.Decode(&result))
	assert.Len(t, result.Products, 3)
	assert.Equal(t, 3, result.Metadata.TotalResults)
	assert.Equal(t, 1, result.Metadata.Page)
	assert.Equal(t, 1, catalog.ListCalls(), "city-only query takes the simple listing path")
	assert.Zero(t, catalog.AdvancedCalls())
}

// TestHandler_Search_TextRoutesAdvanced tests that free text takes the
// advanced path and the normalized query reaches the catalog.
func TestHandler_Search_TextRoutesAdvanced(t *testing.T) {
	catalog := mock.NewCatalog().WithProducts(mock.SampleProducts("marrakech", 2))
	ts := NewTestServer(catalog)

	resp := ts.Search(url.Values{
		"q":        {"food walk"},
		"category": {"Food Tours"},
		"sortBy":   {"price-low"},
	}, "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, 1, catalog.AdvancedCalls())
	assert.Zero(t, catalog.ListCalls())

	sent := catalog.LastQuery()
	assert.Equal(t, "food walk", sent.Text)
	assert.Equal(t, []string{"food-tours"}, sent.Categories, "category slug is normalized before the fetch")
	assert.Equal(t, domain.SortByPriceLow, sent.SortBy)
}

// TestHandler_Search_LocalFilterAndSort tests the compensating local pass
// over the upstream results.
func TestHandler_Search_LocalFilterAndSort(t *testing.T) {
	products := []domain.Product{
		{ID: "a", City: "marrakech", Category: "adventure", Price: 120, HasPrice: true},
		{ID: "b", City: "marrakech", Category: "food-tours", Price: 40, HasPrice: true},
		{ID: "c", City: "marrakech", Category: "food-tours", Price: 90, HasPrice: true},
	}
	catalog := mock.NewCatalog().WithProducts(products)
	ts := NewTestServer(catalog)

	resp := ts.Search(url.Values{
		"city":     {"marrakech"},
		"category": {"food-tours"},
		"sortBy":   {"price-high"},
	}, "")

	assert.Equal(t, http.StatusOK, resp.Code)

	var result domain.SearchResult
	require.NoError(t, resp.Decode(&result))
	require.Len(t, result.Products, 2)
	assert.Equal(t, "c", result.Products[0].ID)
	assert.Equal(t, "b", result.Products[1].ID)
}

// TestHandler_Search_ValidationError tests that malformed query parameters
// come back as structured validation details.
func TestHandler_Search_ValidationError(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	resp := ts.Search(url.Values{"rangeMin": {"abc"}}, "")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	body, err := resp.DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, "validation_error", body["code"])
	details, ok := body["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, details, "rangeMin")
}

// TestHandler_Search_CatalogDown tests the upstream failure mapping.
func TestHandler_Search_CatalogDown(t *testing.T) {
	catalog := mock.NewCatalog().WithError(errors.New("connection refused"))
	ts := NewTestServer(catalog)

	resp := ts.Search(url.Values{"city": {"marrakech"}}, "")

	assert.Equal(t, http.StatusBadGateway, resp.Code)
	body, err := resp.DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, "catalog_unavailable", body["code"])
}

// TestHandler_Search_CacheHit tests that an identical repeat query is
// served from the result cache.
func TestHandler_Search_CacheHit(t *testing.T) {
	catalog := mock.NewCatalog().WithProducts(mock.SampleProducts("fes", 2))
	ts := NewTestServer(catalog)

	params := url.Values{"city": {"fes"}}

	first := ts.Search(params, "")
	assert.Equal(t, http.StatusOK, first.Code)

	second := ts.Search(params, "")
	assert.Equal(t, http.StatusOK, second.Code)

	var result domain.SearchResult
	require.NoError(t, second.Decode(&result))
	assert.True(t, result.Metadata.CacheHit)
	assert.Equal(t, 1, catalog.ListCalls(), "second request must not reach the catalog")
}

// TestHandler_Categories tests the category listing endpoint.
func TestHandler_Categories(t *testing.T) {
	catalog := mock.NewCatalog().WithCategories([]string{"Food Tours", "adventure"})
	ts := NewTestServer(catalog)

	resp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/search/categories"})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, resp.Decode(&body))
	assert.Equal(t, []string{"food-tours", "adventure"}, body.Categories)
}

// TestHandler_SavedSearch_RoundTrip saves a search over HTTP, lists it,
// loads it back and deletes it.
func TestHandler_SavedSearch_RoundTrip(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	// Save
	saveResp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/saved-searches",
		Body: map[string]interface{}{
			"name": "weekend plans",
			"query": map[string]interface{}{
				"q":    "kayak",
				"city": "agadir",
				"page": 4,
			},
		},
	})
	require.Equal(t, http.StatusCreated, saveResp.Code)

	var saved domain.SavedSearch
	require.NoError(t, saveResp.Decode(&saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "weekend plans", saved.Name)
	assert.Equal(t, 4, saved.Query.Page, "snapshot keeps the page it was saved at")

	// List
	listResp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/saved-searches"})
	assert.Equal(t, http.StatusOK, listResp.Code)

	var list []domain.SavedSearch
	require.NoError(t, listResp.Decode(&list))
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)

	// Load
	loadResp := ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/saved-searches/" + saved.ID + "/load"})
	assert.Equal(t, http.StatusOK, loadResp.Code)

	var restored domain.SearchQuery
	require.NoError(t, loadResp.Decode(&restored))
	assert.Equal(t, "kayak", restored.Text)
	assert.Equal(t, "agadir", restored.City)
	assert.Equal(t, 1, restored.Page, "loading always lands on page 1")

	// Delete
	deleteResp := ts.Do(Request{Method: http.MethodDelete, Path: "/api/v1/saved-searches/" + saved.ID})
	assert.Equal(t, http.StatusNoContent, deleteResp.Code)

	missingResp := ts.Do(Request{Method: http.MethodPost, Path: "/api/v1/saved-searches/" + saved.ID + "/load"})
	assert.Equal(t, http.StatusNotFound, missingResp.Code)
}

// TestHandler_History_Flow appends more entries than the caps allow and
// verifies the surfaced tail.
func TestHandler_History_Flow(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	queries := []string{"one", "two", "three", "four", "five", "six", "seven"}
	for _, q := range queries {
		resp := ts.Do(Request{
			Method: http.MethodPost,
			Path:   "/api/v1/history",
			Body:   map[string]string{"query": q},
		})
		require.Equal(t, http.StatusNoContent, resp.Code)
	}

	recentResp := ts.Do(Request{Method: http.MethodGet, Path: "/api/v1/history"})
	assert.Equal(t, http.StatusOK, recentResp.Code)

	var recent []string
	require.NoError(t, recentResp.Decode(&recent))
	assert.Equal(t, []string{"seven", "six", "five", "four", "three"}, recent,
		"only the five most recent entries surface")
}

// TestHandler_History_RejectsEmpty tests the blank-query guard.
func TestHandler_History_RejectsEmpty(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	resp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/history",
		Body:   map[string]string{"query": "   "},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// TestHandler_Selection_FullJourney drives a selection session over HTTP:
// create, click a range, pick a slot, apply.
func TestHandler_Selection_FullJourney(t *testing.T) {
	product := mock.ScheduledProduct("tour-1", "2026-03-15")
	catalog := mock.NewCatalog().WithProducts([]domain.Product{product})
	ts := NewTestServer(catalog)

	// Create
	createResp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections",
		Body:   map[string]string{"productId": "tour-1"},
	})
	require.Equal(t, http.StatusCreated, createResp.Code)

	created, err := createResp.DecodeMap()
	require.NoError(t, err)
	sessionID, _ := created["id"].(string)
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "empty", created["phase"])

	base := "/api/v1/selections/" + sessionID

	// First click opens a pending single selection
	clickResp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   base + "/clicks",
		Body:   map[string]string{"date": "2026-03-15"},
	})
	require.Equal(t, http.StatusOK, clickResp.Code)

	state, err := clickResp.DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, "single_pending", state["phase"])
	assert.Equal(t, "2026-03-15", state["start"])

	// Second click on a later day closes the range
	clickResp = ts.Do(Request{
		Method: http.MethodPost,
		Path:   base + "/clicks",
		Body:   map[string]string{"date": "2026-03-18"},
	})
	require.Equal(t, http.StatusOK, clickResp.Code)

	state, err = clickResp.DecodeMap()
	require.NoError(t, err)
	assert.Equal(t, "range_closed", state["phase"])
	assert.Equal(t, "2026-03-15", state["start"])
	assert.Equal(t, "2026-03-18", state["end"])

	// Choose the afternoon slot
	slotResp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   base + "/slot",
		Body:   map[string]string{"startTime": "15:00", "endTime": "18:00"},
	})
	require.Equal(t, http.StatusOK, slotResp.Code)

	// Apply finalizes the selection
	applyResp := ts.Do(Request{Method: http.MethodPost, Path: base + "/apply"})
	require.Equal(t, http.StatusOK, applyResp.Code)

	final, err := applyResp.DecodeMap()
	require.NoError(t, err)
	assert.NotNil(t, final["selection"])
	assert.NotNil(t, final["schedule"])

	// The session is closed once applied
	goneResp := ts.Do(Request{Method: http.MethodGet, Path: base})
	assert.Equal(t, http.StatusNotFound, goneResp.Code)
}

// TestHandler_Selection_PastDateRejected tests the past-day guard over HTTP.
func TestHandler_Selection_PastDateRejected(t *testing.T) {
	product := mock.ScheduledProduct("tour-1", "2026-03-15")
	catalog := mock.NewCatalog().WithProducts([]domain.Product{product})
	ts := NewTestServer(catalog)

	createResp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections",
		Body:   map[string]string{"productId": "tour-1"},
	})
	require.Equal(t, http.StatusCreated, createResp.Code)
	created, err := createResp.DecodeMap()
	require.NoError(t, err)
	sessionID, _ := created["id"].(string)

	// The mock clock reads 2026-03-10; the 9th is in the past.
	resp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections/" + sessionID + "/clicks",
		Body:   map[string]string{"date": "2026-03-09"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// TestHandler_Selection_UnknownProduct tests product lookup failure mapping.
func TestHandler_Selection_UnknownProduct(t *testing.T) {
	ts := NewTestServer(mock.NewCatalog())

	resp := ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/selections",
		Body:   map[string]string{"productId": "ghost"},
	})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
