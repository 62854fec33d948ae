package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/logger"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/store"
)

// SearchUseCase defines the interface for product search operations.
type SearchUseCase interface {
	// Search runs a query end to end: route to the right catalog endpoint,
	// clamp the page, apply the local compensating filter/sort pass.
	// sessionKey scopes the stale-response guard; empty disables it.
	Search(ctx context.Context, query domain.SearchQuery, sessionKey string) (*domain.SearchResult, error)

	// Categories returns the normalized category slugs known upstream.
	Categories(ctx context.Context) ([]string, error)
}

// NormalizeCategoryFunc maps a raw category slug to its canonical form.
// An empty return drops the slug. Injected so the search flow stays
// decoupled from category-taxonomy concerns.
type NormalizeCategoryFunc func(string) string

// DefaultNormalizeCategory is the fallback normalizer: lowercase, trimmed,
// spaces collapsed to hyphens.
func DefaultNormalizeCategory(slug string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	return strings.Join(strings.Fields(slug), "-")
}

// searchUseCase implements SearchUseCase.
type searchUseCase struct {
	catalog   domain.CatalogClient
	cache     store.ResultCache
	tracker   *ResultTracker
	normalize NormalizeCategoryFunc
	log       *logger.Logger
}

// SearchOption customizes the search use case.
type SearchOption func(*searchUseCase)

// WithResultCache enables the search result cache.
func WithResultCache(cache store.ResultCache) SearchOption {
	return func(uc *searchUseCase) { uc.cache = cache }
}

// WithCategoryNormalizer replaces the category slug normalizer.
func WithCategoryNormalizer(fn NormalizeCategoryFunc) SearchOption {
	return func(uc *searchUseCase) { uc.normalize = fn }
}

// WithLogger replaces the use case logger.
func WithLogger(log *logger.Logger) SearchOption {
	return func(uc *searchUseCase) { uc.log = log }
}

// NewSearchUseCase creates a SearchUseCase backed by the given catalog client.
func NewSearchUseCase(catalog domain.CatalogClient, opts ...SearchOption) SearchUseCase {
	uc := &searchUseCase{
		catalog:   catalog,
		tracker:   NewResultTracker(),
		normalize: DefaultNormalizeCategory,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Search implements SearchUseCase.
func (uc *searchUseCase) Search(ctx context.Context, query domain.SearchQuery, sessionKey string) (*domain.SearchResult, error) {
	startTime := time.Now()

	query.SetDefaults()
	if err := query.Validate(); err != nil {
		return nil, err
	}
	query.Categories = uc.normalizeCategories(query.Categories)

	var generation uint64
	if sessionKey != "" {
		generation = uc.tracker.Begin(sessionKey)
	}

	cacheKey := store.CacheKey(query)
	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		cached.Metadata.CacheHit = true
		cached.Metadata.SearchTimeMs = time.Since(startTime).Milliseconds()
		return cached, nil
	}

	page, source, err := uc.fetch(ctx, query)
	if err != nil {
		// All upstream failure causes collapse to one error; the handler
		// surfaces a generic message with an empty result set and the
		// query state stays as submitted so the user can retry.
		uc.log.Warn().Err(err).Str("source", string(source)).Msg("catalog fetch failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	// The upstream reported fewer pages than requested: clamp and refetch
	// once so the out-of-range page is never surfaced.
	if clamped := domain.ClampPage(query.Page, page.TotalPages); clamped != query.Page {
		query.Page = clamped
		page, source, err = uc.fetch(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
		}
	}

	if sessionKey != "" && !uc.tracker.Current(sessionKey, generation) {
		return nil, domain.ErrStaleResult
	}

	filtered := ApplyLocalFilters(page.Products, domain.NewCategorySet(query.Categories), query.PriceRange)
	sorted := SortProducts(filtered, query.SortBy)

	result := domain.NewSearchResult(query, sorted, domain.SearchMetadata{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		Source:       source,
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	})

	uc.toCache(ctx, cacheKey, &result)
	return &result, nil
}

// fetch routes the query to the advanced or simple catalog endpoint.
func (uc *searchUseCase) fetch(ctx context.Context, query domain.SearchQuery) (domain.ProductPage, domain.SearchSource, error) {
	if query.NeedsAdvancedSearch() {
		page, err := uc.catalog.SearchAdvanced(ctx, query)
		return page, domain.SourceAdvanced, err
	}
	page, err := uc.catalog.ListByCity(ctx, query.City, query.Page)
	return page, domain.SourceSimple, err
}

// Categories implements SearchUseCase.
func (uc *searchUseCase) Categories(ctx context.Context) ([]string, error) {
	raw, err := uc.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	return uc.normalizeCategories(raw), nil
}

// normalizeCategories runs the injected normalizer over the slugs, dropping
// empties and duplicates while keeping first-seen order.
func (uc *searchUseCase) normalizeCategories(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(raw))
	result := make([]string, 0, len(raw))
	for _, slug := range raw {
		normalized := uc.normalize(slug)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

func (uc *searchUseCase) fromCache(ctx context.Context, key string) *domain.SearchResult {
	if uc.cache == nil {
		return nil
	}
	cached, err := uc.cache.Get(ctx, key)
	if err != nil {
		// A broken cache never breaks a search.
		uc.log.Warn().Err(err).Msg("result cache read failed")
		return nil
	}
	return cached
}

func (uc *searchUseCase) toCache(ctx context.Context, key string, result *domain.SearchResult) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, result); err != nil {
		uc.log.Warn().Err(err).Msg("result cache write failed")
	}
}

// Ensure searchUseCase implements SearchUseCase at compile time.
var _ SearchUseCase = (*searchUseCase)(nil)
