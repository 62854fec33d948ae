// Package integration provides helpers and integration tests for the tour
// search system. Integration tests verify that components work together
// correctly, including HTTP handlers, use cases, and the in-memory store.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"

	"github.com/labstack/echo/v4"

	tourhttp "github.com/tour-search/tour-search-and-booking-system/internal/adapter/http"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/store"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
	"github.com/tour-search/tour-search-and-booking-system/internal/usecase"
	"github.com/tour-search/tour-search-and-booking-system/test/mock"
)

// BaseTestTime is the fixed clock reading all integration tests run at.
// Product fixtures schedule a few days after it so nothing is in the past.
const BaseTestTime = "2026-03-10T12:00:00Z"

// TestServer wires the full stack against a mock catalog and in-memory
// store, and provides helper methods for driving it over HTTP.
type TestServer struct {
	Echo    *echo.Echo
	Catalog *mock.Catalog
	Store   *store.Memory
	Clock   *timeutil.MockClock
}

// NewTestServer creates a test server around the given mock catalog.
func NewTestServer(catalog *mock.Catalog) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	mem := store.NewMemory()
	clock := timeutil.NewMockClockFromString(BaseTestTime)

	searchUC := usecase.NewSearchUseCase(catalog, usecase.WithResultCache(mem))
	savedUC := usecase.NewSavedSearchUseCase(mem, clock)
	historyUC := usecase.NewHistoryUseCase(mem)
	selectionUC := usecase.NewSelectionUseCase(catalog, clock, nil)

	tourhttp.RegisterRoutes(e, tourhttp.Handlers{
		Search:      tourhttp.NewSearchHandler(searchUC),
		SavedSearch: tourhttp.NewSavedSearchHandler(savedUC),
		History:     tourhttp.NewHistoryHandler(historyUC),
		Selection:   tourhttp.NewSelectionHandler(selectionUC),
	})

	return &TestServer{
		Echo:    e,
		Catalog: catalog,
		Store:   mem,
		Clock:   clock,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)
	if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Search runs a GET search with the given query parameters and optional
// session key header.
func (ts *TestServer) Search(params url.Values, sessionKey string) Response {
	headers := map[string]string{}
	if sessionKey != "" {
		headers["X-Search-Session"] = sessionKey
	}
	return ts.Do(Request{
		Method:  http.MethodGet,
		Path:    "/api/v1/search?" + params.Encode(),
		Headers: headers,
	})
}

// Health makes a health check request.
func (ts *TestServer) Health() Response {
	return ts.Do(Request{Method: http.MethodGet, Path: "/health"})
}

// Decode unmarshals the response body into target.
func (r *Response) Decode(target interface{}) error {
	return json.Unmarshal(r.Body, target)
}

// DecodeMap unmarshals the response body into a generic map.
func (r *Response) DecodeMap() (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(r.Body, &m); err != nil {
		return nil, err
	}
	return m, nil
}
