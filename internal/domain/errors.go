package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the search and selection flows.
var (
	// ErrInvalidRequest indicates a request failed validation.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrCatalogUnavailable indicates the upstream catalog could not be
	// reached or returned an unusable response. All upstream failure causes
	// collapse to this single error; the caller gets empty results and may
	// retry by changing the query.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrProductNotFound indicates the catalog has no product with the
	// requested identifier.
	ErrProductNotFound = errors.New("product not found")

	// ErrSelectionNotFound indicates no selection session exists for the
	// given identifier (expired or never created).
	ErrSelectionNotFound = errors.New("selection not found")

	// ErrSavedSearchNotFound indicates no saved search exists with the
	// given identifier.
	ErrSavedSearchNotFound = errors.New("saved search not found")

	// ErrStaleResult indicates a search response was discarded because a
	// newer request for the same session was dispatched while it was in
	// flight.
	ErrStaleResult = errors.New("stale search result")

	// ErrPastDate indicates an attempt to select a day strictly before
	// today. Past days are disabled in the grid and rejected when driven
	// programmatically.
	ErrPastDate = errors.New("date is in the past")

	// ErrEmptySelection indicates Apply was invoked before any day was
	// picked.
	ErrEmptySelection = errors.New("no date selected")
)

// wrapInvalid wraps a message with ErrInvalidRequest.
func wrapInvalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}

// CatalogError wraps an error from the upstream catalog API with enough
// context to decide whether the call is worth retrying.
type CatalogError struct {
	// Operation is the catalog call that failed (e.g., "advanced_search")
	Operation string

	// Err is the underlying error
	Err error

	// Retryable indicates whether retrying the call may succeed
	// (network failures and 5xx responses are; 4xx responses are not)
	Retryable bool
}

// NewCatalogError creates a non-retryable CatalogError.
func NewCatalogError(operation string, err error) *CatalogError {
	return &CatalogError{Operation: operation, Err: err, Retryable: false}
}

// NewRetryableCatalogError creates a retryable CatalogError.
func NewRetryableCatalogError(operation string, err error) *CatalogError {
	return &CatalogError{Operation: operation, Err: err, Retryable: true}
}

// Error implements the error interface.
func (e *CatalogError) Error() string {
	return fmt.Sprintf("catalog %s: %v", e.Operation, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// IsRetryableCatalogError reports whether err is a CatalogError marked
// retryable. Used as the RetryIf predicate on catalog calls.
func IsRetryableCatalogError(err error) bool {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce.Retryable
	}
	return false
}
