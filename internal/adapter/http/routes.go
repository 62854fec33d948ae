// Package http provides the HTTP handler layer for the tour search API.
package http

import (
	"github.com/labstack/echo/v4"
)

// Handlers groups the handlers the router needs.
type Handlers struct {
	Search      *SearchHandler
	SavedSearch *SavedSearchHandler
	History     *HistoryHandler
	Selection   *SelectionHandler
}

// RegisterRoutes registers all tour search API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware
// applied to the versioned API group only. The health endpoint stays bare.
func RegisterRoutesWithMiddleware(e *echo.Echo, h Handlers, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Search.Health)

	// API v1 group
	api := e.Group("/api/v1", middleware...)

	// Search group
	search := api.Group("/search")
	search.GET("", h.Search.Search)
	search.GET("/categories", h.Search.Categories)

	// Saved searches group
	saved := api.Group("/saved-searches")
	saved.POST("", h.SavedSearch.Save)
	saved.GET("", h.SavedSearch.List)
	saved.POST("/:id/load", h.SavedSearch.Load)
	saved.DELETE("/:id", h.SavedSearch.Delete)

	// History group
	history := api.Group("/history")
	history.POST("", h.History.Append)
	history.GET("", h.History.Recent)

	// Selection session group
	selections := api.Group("/selections")
	selections.POST("", h.Selection.Create)
	selections.GET("/:id", h.Selection.Get)
	selections.POST("/:id/clicks", h.Selection.Click)
	selections.POST("/:id/hover", h.Selection.Hover)
	selections.POST("/:id/months", h.Selection.Navigate)
	selections.POST("/:id/slot", h.Selection.SetSlot)
	selections.POST("/:id/reset", h.Selection.Reset)
	selections.POST("/:id/apply", h.Selection.Apply)
}
