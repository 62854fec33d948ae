package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/tour-search/tour-search-and-booking-system/internal/adapter/http/response"
	"github.com/tour-search/tour-search-and-booking-system/internal/domain"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
	"github.com/tour-search/tour-search-and-booking-system/internal/usecase"
)

// sessionKeyHeader carries the caller's search session identity. Responses
// for superseded requests on the same session return 409.
const sessionKeyHeader = "X-Search-Session"

// SearchHandler handles HTTP requests for search endpoints.
type SearchHandler struct {
	useCase usecase.SearchUseCase
}

// NewSearchHandler creates a new SearchHandler with the given use case.
func NewSearchHandler(uc usecase.SearchUseCase) *SearchHandler {
	return &SearchHandler{
		useCase: uc,
	}
}

// Search handles GET /api/v1/search
//
// @Summary Search for tours and activities
// @Description Search the catalog with text, category, price, and advanced filters
// @Tags search
// @Produce json
// @Param q query string false "Free-text query"
// @Param city query string false "City filter"
// @Param category query []string false "Category slugs, repeatable, OR semantics"
// @Param rangeMin query number false "Sidebar price range lower bound"
// @Param rangeMax query number false "Sidebar price range upper bound"
// @Param sortBy query string false "Sort option" Enums(recommended, price-low, price-high, rating, popularity)
// @Param page query int false "Page number, 1-based"
// @Success 200 {object} domain.SearchResult
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 409 {object} response.ErrorDetail "Superseded by a newer search"
// @Failure 502 {object} response.ErrorDetail "Catalog unavailable"
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	query := toDomainQuery(&req)
	sessionKey := c.Request().Header.Get(sessionKeyHeader)

	result, err := h.useCase.Search(c.Request().Context(), query, sessionKey)
	if err != nil {
		return handleError(c, err)
	}

	return response.SearchResults(c, result)
}

// Categories handles GET /api/v1/search/categories
//
// @Summary List available categories
// @Tags search
// @Produce json
// @Success 200 {object} response.Response
// @Failure 502 {object} response.ErrorDetail "Catalog unavailable"
// @Router /api/v1/search/categories [get]
func (h *SearchHandler) Categories(c echo.Context) error {
	categories, err := h.useCase.Categories(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, map[string]any{"categories": categories})
}

// Health handles GET /health
// Simple health check endpoint.
func (h *SearchHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// SavedSearchHandler handles HTTP requests for saved search endpoints.
type SavedSearchHandler struct {
	useCase usecase.SavedSearchUseCase
}

// NewSavedSearchHandler creates a new SavedSearchHandler.
func NewSavedSearchHandler(uc usecase.SavedSearchUseCase) *SavedSearchHandler {
	return &SavedSearchHandler{
		useCase: uc,
	}
}

// Save handles POST /api/v1/saved-searches
//
// @Summary Save a named search snapshot
// @Tags saved-searches
// @Accept json
// @Produce json
// @Param request body SaveSearchRequest true "Name and query state"
// @Success 201 {object} domain.SavedSearch
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/saved-searches [post]
func (h *SavedSearchHandler) Save(c echo.Context) error {
	var req SaveSearchRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	saved, err := h.useCase.Save(c.Request().Context(), req.Name, req.Query)
	if err != nil {
		return handleError(c, err)
	}

	return response.Created(c, saved)
}

// List handles GET /api/v1/saved-searches
//
// @Summary List saved searches, newest first
// @Tags saved-searches
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/saved-searches [get]
func (h *SavedSearchHandler) List(c echo.Context) error {
	searches, err := h.useCase.List(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, map[string]any{"savedSearches": searches})
}

// Load handles POST /api/v1/saved-searches/:id/load
//
// @Summary Restore a saved search as a fresh query
// @Description Returns the saved query state with the page reset to 1
// @Tags saved-searches
// @Produce json
// @Param id path string true "Saved search ID"
// @Success 200 {object} domain.SearchQuery
// @Failure 404 {object} response.ErrorDetail "Saved search not found"
// @Router /api/v1/saved-searches/{id}/load [post]
func (h *SavedSearchHandler) Load(c echo.Context) error {
	query, err := h.useCase.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, query)
}

// Delete handles DELETE /api/v1/saved-searches/:id
//
// @Summary Delete a saved search
// @Tags saved-searches
// @Param id path string true "Saved search ID"
// @Success 204 "Deleted"
// @Failure 404 {object} response.ErrorDetail "Saved search not found"
// @Router /api/v1/saved-searches/{id} [delete]
func (h *SavedSearchHandler) Delete(c echo.Context) error {
	if err := h.useCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// HistoryHandler handles HTTP requests for search history endpoints.
type HistoryHandler struct {
	useCase usecase.HistoryUseCase
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(uc usecase.HistoryUseCase) *HistoryHandler {
	return &HistoryHandler{
		useCase: uc,
	}
}

// Append handles POST /api/v1/history
//
// @Summary Record a free-text query in the search history
// @Tags history
// @Accept json
// @Param request body HistoryRequest true "Query text"
// @Success 204 "Recorded"
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Router /api/v1/history [post]
func (h *HistoryHandler) Append(c echo.Context) error {
	var req HistoryRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	if err := h.useCase.Append(c.Request().Context(), req.Query); err != nil {
		return handleError(c, err)
	}
	return response.NoContent(c)
}

// Recent handles GET /api/v1/history
//
// @Summary List recent queries, most recent first
// @Tags history
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/history [get]
func (h *HistoryHandler) Recent(c echo.Context) error {
	entries, err := h.useCase.Recent(c.Request().Context())
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, map[string]any{"history": entries})
}

// SelectionHandler handles HTTP requests for date selection sessions.
type SelectionHandler struct {
	useCase usecase.SelectionUseCase
}

// NewSelectionHandler creates a new SelectionHandler.
func NewSelectionHandler(uc usecase.SelectionUseCase) *SelectionHandler {
	return &SelectionHandler{
		useCase: uc,
	}
}

// Create handles POST /api/v1/selections
//
// @Summary Open a date selection session for a product
// @Tags selections
// @Accept json
// @Produce json
// @Param request body CreateSelectionRequest true "Product to select dates for"
// @Success 201 {object} usecase.SelectionView
// @Failure 404 {object} response.ErrorDetail "Product not found"
// @Router /api/v1/selections [post]
func (h *SelectionHandler) Create(c echo.Context) error {
	var req CreateSelectionRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	view, err := h.useCase.Create(c.Request().Context(), req.ProductID)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, view)
}

// Get handles GET /api/v1/selections/:id
//
// @Summary Fetch the current state of a selection session
// @Tags selections
// @Produce json
// @Param id path string true "Selection session ID"
// @Success 200 {object} usecase.SelectionView
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id} [get]
func (h *SelectionHandler) Get(c echo.Context) error {
	view, err := h.useCase.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// Click handles POST /api/v1/selections/:id/clicks
//
// @Summary Register a calendar day click
// @Description Advances the selection state machine. A rapid second click on
// @Description the same day confirms a single-day selection immediately.
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection session ID"
// @Param request body DateRequest true "Clicked day"
// @Success 200 {object} usecase.SelectionView
// @Failure 400 {object} response.ErrorDetail "Past date or bad payload"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id}/clicks [post]
func (h *SelectionHandler) Click(c echo.Context) error {
	var req DateRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "date must be in YYYY-MM-DD format")
	}

	view, err := h.useCase.Click(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// Hover handles POST /api/v1/selections/:id/hover
//
// @Summary Update the hover preview day
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection session ID"
// @Param request body DateRequest true "Hovered day"
// @Success 200 {object} usecase.SelectionView
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id}/hover [post]
func (h *SelectionHandler) Hover(c echo.Context) error {
	var req DateRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	date, err := timeutil.ParseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "date must be in YYYY-MM-DD format")
	}

	view, err := h.useCase.Hover(c.Request().Context(), c.Param("id"), date)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// Navigate handles POST /api/v1/selections/:id/months
//
// @Summary Move the visible calendar month
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection session ID"
// @Param request body NavigateRequest true "Months to move"
// @Success 200 {object} usecase.SelectionView
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id}/months [post]
func (h *SelectionHandler) Navigate(c echo.Context) error {
	var req NavigateRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	view, err := h.useCase.Navigate(c.Request().Context(), c.Param("id"), req.Delta)
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// SetSlot handles POST /api/v1/selections/:id/slot
//
// @Summary Choose a time slot for the selection
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection session ID"
// @Param request body SlotRequest true "Chosen time slot"
// @Success 200 {object} usecase.SelectionView
// @Failure 400 {object} response.ErrorDetail "Slot not offered by the product"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id}/slot [post]
func (h *SelectionHandler) SetSlot(c echo.Context) error {
	var req SlotRequest
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return handleValidationError(c, err)
	}

	view, err := h.useCase.SetSlot(c.Request().Context(), c.Param("id"), domain.TimeSlot{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// Reset handles POST /api/v1/selections/:id/reset
//
// @Summary Clear the selection back to the empty state
// @Tags selections
// @Produce json
// @Param id path string true "Selection session ID"
// @Success 200 {object} usecase.SelectionView
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Router /api/v1/selections/{id}/reset [post]
func (h *SelectionHandler) Reset(c echo.Context) error {
	view, err := h.useCase.Reset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// Apply handles POST /api/v1/selections/:id/apply
//
// @Summary Confirm the selection and resolve a schedule
// @Description Finds an existing schedule for the selected start date and
// @Description time slot, creating one in the catalog when none exists, then
// @Description closes the session.
// @Tags selections
// @Accept json
// @Produce json
// @Param id path string true "Selection session ID"
// @Success 200 {object} usecase.SelectionView
// @Failure 400 {object} response.ErrorDetail "Nothing selected yet"
// @Failure 404 {object} response.ErrorDetail "Session not found"
// @Failure 502 {object} response.ErrorDetail "Catalog unavailable"
// @Router /api/v1/selections/{id}/apply [post]
func (h *SelectionHandler) Apply(c echo.Context) error {
	view, err := h.useCase.Apply(c.Request().Context(), c.Param("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.OK(c, view)
}

// handleValidationError handles validation errors and returns a 400 response.
func handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrStaleResult):
		return response.StaleRequest(c)

	case errors.Is(err, domain.ErrCatalogUnavailable):
		return response.CatalogUnavailable(c)

	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrSelectionNotFound),
		errors.Is(err, domain.ErrSavedSearchNotFound):
		return response.NotFound(c, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)

	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)

	case errors.Is(err, domain.ErrPastDate),
		errors.Is(err, domain.ErrEmptySelection):
		return response.BadRequest(c, err.Error())

	case errors.Is(err, domain.ErrInvalidRequest):
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Default to internal server error
	return response.InternalServerError(c)
}
