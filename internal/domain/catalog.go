package domain

import "context"

//go:generate mockgen -source=catalog.go -destination=mock_catalog.go -package=domain

// CatalogClient is the port to the upstream catalog REST API. The catalog
// is an external collaborator with a fixed contract; implementations live
// in the adapter layer and all response-shape normalization happens there.
type CatalogClient interface {
	// ListByCity fetches the simple product listing, optionally filtered by
	// city. The upstream may answer with a bare array (legacy) or a
	// paginated envelope; implementations normalize both into a ProductPage.
	ListByCity(ctx context.Context, city string, page int) (ProductPage, error)

	// SearchAdvanced runs the full-filter search. All filters, the sort
	// option, the page and a fixed limit travel as one flat query string.
	SearchAdvanced(ctx context.Context, query SearchQuery) (ProductPage, error)

	// Categories fetches the known category slugs.
	Categories(ctx context.Context) ([]string, error)

	// GetProduct fetches a single product with its schedules and time slots.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// CreateSchedule materializes a schedule for a virtual time slot so a
	// booking can target it. Returns the persisted schedule.
	CreateSchedule(ctx context.Context, productID string, schedule Schedule) (Schedule, error)
}
