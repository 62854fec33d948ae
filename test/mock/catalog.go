// Package mock provides test doubles for the tour search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
)

// Catalog is a configurable mock implementation of domain.CatalogClient.
// It supports configurable delays, errors, and responses for testing
// various scenarios including timeouts and upstream failures.
type Catalog struct {
	mu sync.Mutex

	products   []domain.Product
	totalPages int
	categories []string
	byID       map[string]domain.Product
	err        error
	delay      time.Duration

	listCalls     int
	advancedCalls int
	lastQuery     domain.SearchQuery
	created       []domain.Schedule
	scheduleSeq   int
}

// NewCatalog creates a new mock catalog client.
// The client is configured using the builder pattern methods.
func NewCatalog() *Catalog {
	return &Catalog{
		totalPages: 1,
		byID:       make(map[string]domain.Product),
	}
}

// WithProducts configures the products returned by listing and search calls.
// Products with an ID are also served by GetProduct.
func (c *Catalog) WithProducts(products []domain.Product) *Catalog {
	c.products = products
	for _, p := range products {
		c.byID[p.ID] = p
	}
	return c
}

// WithTotalPages configures the page count the catalog reports.
func (c *Catalog) WithTotalPages(n int) *Catalog {
	c.totalPages = n
	return c
}

// WithCategories configures the category slugs the catalog returns.
func (c *Catalog) WithCategories(categories []string) *Catalog {
	c.categories = categories
	return c
}

// WithError configures every call to return the given error.
func (c *Catalog) WithError(err error) *Catalog {
	c.err = err
	return c
}

// WithDelay configures the catalog to wait before responding.
// This is useful for testing timeout behavior.
func (c *Catalog) WithDelay(d time.Duration) *Catalog {
	c.delay = d
	return c
}

// wait applies the configured delay and honors context cancellation.
func (c *Catalog) wait(ctx context.Context) error {
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}
	}
	return ctx.Err()
}

// ListByCity implements domain.CatalogClient.
func (c *Catalog) ListByCity(ctx context.Context, city string, page int) (domain.ProductPage, error) {
	c.mu.Lock()
	c.listCalls++
	c.mu.Unlock()

	if err := c.wait(ctx); err != nil {
		return domain.ProductPage{}, err
	}
	if c.err != nil {
		return domain.ProductPage{}, c.err
	}

	products := c.products
	if city != "" {
		filtered := make([]domain.Product, 0, len(products))
		for _, p := range products {
			if p.City == city {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	return domain.ProductPage{
		Products:   products,
		Page:       page,
		TotalPages: c.totalPages,
		Total:      len(products),
	}, nil
}

// SearchAdvanced implements domain.CatalogClient.
// The query is recorded so tests can assert what was sent upstream.
func (c *Catalog) SearchAdvanced(ctx context.Context, query domain.SearchQuery) (domain.ProductPage, error) {
	c.mu.Lock()
	c.advancedCalls++
	c.lastQuery = query
	c.mu.Unlock()

	if err := c.wait(ctx); err != nil {
		return domain.ProductPage{}, err
	}
	if c.err != nil {
		return domain.ProductPage{}, c.err
	}

	return domain.ProductPage{
		Products:   c.products,
		Page:       query.Page,
		TotalPages: c.totalPages,
		Total:      len(c.products),
	}, nil
}

// Categories implements domain.CatalogClient.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	return append([]string(nil), c.categories...), nil
}

// GetProduct implements domain.CatalogClient.
func (c *Catalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

// CreateSchedule implements domain.CatalogClient.
// Created schedules get sequential IDs and are recorded for assertions.
func (c *Catalog) CreateSchedule(_ context.Context, productID string, schedule domain.Schedule) (domain.Schedule, error) {
	if c.err != nil {
		return domain.Schedule{}, c.err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.scheduleSeq++
	schedule.ID = fmt.Sprintf("sched-%s-%d", productID, c.scheduleSeq)
	c.created = append(c.created, schedule)
	return schedule, nil
}

// ListCalls returns how many times ListByCity was called.
func (c *Catalog) ListCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listCalls
}

// AdvancedCalls returns how many times SearchAdvanced was called.
func (c *Catalog) AdvancedCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advancedCalls
}

// LastQuery returns the query from the most recent SearchAdvanced call.
func (c *Catalog) LastQuery() domain.SearchQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

// CreatedSchedules returns the schedules materialized via CreateSchedule.
func (c *Catalog) CreatedSchedules() []domain.Schedule {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.Schedule(nil), c.created...)
}

// Ensure Catalog implements domain.CatalogClient at compile time.
var _ domain.CatalogClient = (*Catalog)(nil)

// SampleProducts returns a slice of sample products for testing.
// Products cycle through a small set of categories and carry ascending
// direct prices so sort assertions stay readable.
func SampleProducts(city string, count int) []domain.Product {
	categories := []string{"food-tours", "adventure", "culture"}

	products := make([]domain.Product, count)
	for i := 0; i < count; i++ {
		products[i] = domain.Product{
			ID:       fmt.Sprintf("%s-tour-%d", city, i+1),
			Title:    fmt.Sprintf("Sample Tour %d", i+1),
			City:     city,
			Category: categories[i%len(categories)],
			Price:    50 + float64(i*25),
			HasPrice: true,
			Rating:   4.0 + float64(i%10)/10,
		}
	}
	return products
}

// ScheduledProduct returns a product with one persisted schedule and two
// offered time slots, suitable for selection-session tests.
func ScheduledProduct(id string, scheduleDate string) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    "Atlas Day Trip",
		City:     "marrakech",
		Category: "adventure",
		Price:    80,
		HasPrice: true,
		Rating:   4.6,
		Schedules: []domain.Schedule{
			{ID: "sched-" + id + "-base", Price: 75, Date: scheduleDate, Time: "10:00"},
		},
		TimeSlots: []domain.TimeSlot{
			{StartTime: "10:00", EndTime: "13:00"},
			{StartTime: "15:00", EndTime: "18:00"},
		},
	}
}
