package domain

// SearchSource identifies which upstream path served a result set.
type SearchSource string

// Search sources.
const (
	// SourceAdvanced is the full-filter search endpoint
	SourceAdvanced SearchSource = "advanced"

	// SourceSimple is the city-only listing endpoint
	SourceSimple SearchSource = "simple"
)

// SearchResult represents the outcome of a search after the upstream fetch
// and the local compensating filter/sort pass.
type SearchResult struct {
	// Query echoes the effective query the result answers
	Query SearchQuery `json:"query"`

	// Metadata contains information about the search execution
	Metadata SearchMetadata `json:"metadata"`

	// Products are the results after local filtering and sorting
	Products []Product `json:"products"`
}

// SearchMetadata contains metadata about the search execution.
type SearchMetadata struct {
	// TotalResults is the number of products returned after local filtering
	TotalResults int `json:"total_results"`

	// Page is the effective (clamped) page number
	Page int `json:"page"`

	// TotalPages is the number of pages reported upstream
	TotalPages int `json:"total_pages"`

	// ActiveFilters is the count of non-default filter fields, display only
	ActiveFilters int `json:"active_filters"`

	// Source is the upstream path that served the results
	Source SearchSource `json:"source"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the results came from the result cache
	CacheHit bool `json:"cache_hit"`
}

// NewSearchResult builds a result, normalizing a nil product slice to an
// empty one so the JSON shape stays stable.
func NewSearchResult(query SearchQuery, products []Product, metadata SearchMetadata) SearchResult {
	if products == nil {
		products = []Product{}
	}
	metadata.TotalResults = len(products)
	metadata.ActiveFilters = query.ActiveFilterCount()
	return SearchResult{
		Query:    query,
		Metadata: metadata,
		Products: products,
	}
}
