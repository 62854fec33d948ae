// Package catalog implements the HTTP client for the upstream catalog REST
// API. It is the only package that knows the catalog's URL layout and
// response shapes; everything it returns is normalized into domain types.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/retry"
)

// Catalog operation names used in error context.
const (
	opList           = "list"
	opAdvanced       = "advanced_search"
	opCategories     = "categories"
	opGetProduct     = "get_product"
	opCreateSchedule = "create_schedule"
)

// Client talks to the catalog API over HTTP. Transient failures (network
// errors, 5xx responses) are retried with backoff; 4xx responses are not.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retryCfg   retry.Config
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (used in tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetryConfig replaces the retry policy.
func WithRetryConfig(cfg retry.Config) Option {
	return func(c *Client) { c.retryCfg = cfg }
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	cfg := retry.CatalogConfig
	cfg.RetryIf = domain.IsRetryableCatalogError

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListByCity implements domain.CatalogClient.
func (c *Client) ListByCity(ctx context.Context, city string, page int) (domain.ProductPage, error) {
	params := url.Values{}
	if city != "" {
		params.Set("city", city)
	}
	if page > 1 {
		params.Set("page", strconv.Itoa(page))
	}

	body, err := c.get(ctx, opList, "/api/products", params)
	if err != nil {
		return domain.ProductPage{}, err
	}

	result, err := normalizeListing(body, page)
	if err != nil {
		return domain.ProductPage{}, domain.NewCatalogError(opList, err)
	}
	return result, nil
}

// SearchAdvanced implements domain.CatalogClient. All filters travel as one
// flat query string with a fixed limit.
func (c *Client) SearchAdvanced(ctx context.Context, query domain.SearchQuery) (domain.ProductPage, error) {
	params := url.Values{}
	if query.Text != "" {
		params.Set("q", query.Text)
	}
	if query.City != "" {
		params.Set("city", query.City)
	}
	for _, cat := range query.Categories {
		params.Add("category", cat)
	}

	a := query.Advanced
	if a.MinPrice != nil {
		params.Set("minPrice", formatFloat(*a.MinPrice))
	}
	if a.MaxPrice != nil {
		params.Set("maxPrice", formatFloat(*a.MaxPrice))
	}
	if a.MinRating != nil {
		params.Set("minRating", formatFloat(*a.MinRating))
	}
	for _, d := range a.Durations {
		params.Add("durations[]", d)
	}
	if a.SelectedDate != "" {
		params.Set("selectedDate", a.SelectedDate)
	}
	if a.Location != nil {
		params.Set("locationLat", formatFloat(a.Location.Lat))
		params.Set("locationLng", formatFloat(a.Location.Lng))
		params.Set("radius", formatFloat(a.RadiusKm))
	}
	if a.SkipTheLine {
		params.Set("skipTheLine", "true")
	}

	params.Set("sortBy", string(query.SortBy))
	params.Set("page", strconv.Itoa(query.Page))
	params.Set("limit", strconv.Itoa(domain.AdvancedSearchLimit))

	body, err := c.get(ctx, opAdvanced, "/api/search/advanced", params)
	if err != nil {
		return domain.ProductPage{}, err
	}

	var dto advancedSearchDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.ProductPage{}, domain.NewCatalogError(opAdvanced, fmt.Errorf("decode response: %w", err))
	}

	totalPages := dto.TotalPages
	if totalPages == 0 {
		totalPages = 1
	}
	return domain.ProductPage{
		Products:   toDomainProducts(dto.Products),
		Page:       query.Page,
		TotalPages: totalPages,
	}, nil
}

// Categories implements domain.CatalogClient.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, opCategories, "/api/search/categories", nil)
	if err != nil {
		return nil, err
	}

	result, err := normalizeCategories(body)
	if err != nil {
		return nil, domain.NewCatalogError(opCategories, err)
	}
	return result, nil
}

// GetProduct implements domain.CatalogClient.
func (c *Client) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	body, err := c.get(ctx, opGetProduct, "/api/products/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var dto productDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, domain.NewCatalogError(opGetProduct, fmt.Errorf("decode response: %w", err))
	}
	product := toDomainProduct(dto)
	return &product, nil
}

// CreateSchedule implements domain.CatalogClient.
func (c *Client) CreateSchedule(ctx context.Context, productID string, schedule domain.Schedule) (domain.Schedule, error) {
	payload, err := json.Marshal(createScheduleDTO{
		Price: schedule.Price,
		Date:  schedule.Date,
		Time:  schedule.Time,
	})
	if err != nil {
		return domain.Schedule{}, domain.NewCatalogError(opCreateSchedule, err)
	}

	path := "/api/products/" + url.PathEscape(productID) + "/schedules"
	body, err := c.do(ctx, opCreateSchedule, http.MethodPost, path, nil, payload)
	if err != nil {
		return domain.Schedule{}, err
	}

	var dto scheduleDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return domain.Schedule{}, domain.NewCatalogError(opCreateSchedule, fmt.Errorf("decode response: %w", err))
	}
	return domain.Schedule{
		ID:    dto.ID,
		Price: dto.Price,
		Date:  dto.Date,
		Time:  dto.Time,
	}, nil
}

// get issues a retried GET and returns the response body.
func (c *Client) get(ctx context.Context, operation, path string, params url.Values) ([]byte, error) {
	return c.do(ctx, operation, http.MethodGet, path, params, nil)
}

// do issues a single retried HTTP request and returns the response body.
func (c *Client) do(ctx context.Context, operation, method, path string, params url.Values, payload []byte) ([]byte, error) {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	return retry.DoWithResult(ctx, func() ([]byte, error) {
		var reqBody io.Reader
		if payload != nil {
			reqBody = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
		if err != nil {
			return nil, domain.NewCatalogError(operation, err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, domain.NewRetryableCatalogError(operation, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, domain.NewRetryableCatalogError(operation, err)
		}

		switch {
		case resp.StatusCode == http.StatusNotFound && operation == opGetProduct:
			return nil, domain.NewCatalogError(operation, domain.ErrProductNotFound)
		case resp.StatusCode >= 500:
			return nil, domain.NewRetryableCatalogError(operation,
				fmt.Errorf("upstream status %d", resp.StatusCode))
		case resp.StatusCode >= 400:
			return nil, domain.NewCatalogError(operation,
				fmt.Errorf("upstream status %d", resp.StatusCode))
		}

		return body, nil
	}, c.retryCfg)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Ensure the port is implemented at compile time.
var _ domain.CatalogClient = (*Client)(nil)
