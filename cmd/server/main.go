// Package main is the entry point for the tour search and booking service.
//
//	@title						Tour Search and Booking API
//	@version					1.0.0
//	@description				A tour and activity search service with advanced filtering, saved searches, search history, and calendar date selection.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/tour-search/tour-search-and-booking-system/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/api/v1
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/tour-search/tour-search-and-booking-system/internal/config"

	// Import generated docs for swagger
	_ "github.com/tour-search/tour-search-and-booking-system/docs"

	// Application layers
	"github.com/tour-search/tour-search-and-booking-system/internal/adapter/catalog"
	tourhttp "github.com/tour-search/tour-search-and-booking-system/internal/adapter/http"
	"github.com/tour-search/tour-search-and-booking-system/internal/adapter/http/middleware"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/logger"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/store"
	"github.com/tour-search/tour-search-and-booking-system/internal/infrastructure/timeutil"
	"github.com/tour-search/tour-search-and-booking-system/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg := config.MustLoad()

	appLog := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "tour-search",
	})

	appLog.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Msg("Configuration loaded")

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	// Setup middleware
	if cfg.RateLim.Enabled {
		middleware.SetupWithRateLimit(e, appLog.Logger, middleware.RateLimitConfig{
			RPS:   cfg.RateLim.RPS,
			Burst: cfg.RateLim.Burst,
		})
	} else {
		middleware.Setup(e, appLog.Logger)
	}

	// Setup routes
	cleanup, err := setupRoutes(e, cfg, appLog)
	if err != nil {
		appLog.Fatal().Err(err).Msg("Failed to initialize application")
	}
	defer cleanup()

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		appLog.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, appLog)
}

// setupRoutes wires the storage, catalog client, use cases, and handlers,
// and registers all routes. The returned cleanup closes the store.
func setupRoutes(e *echo.Echo, cfg *config.Config, appLog *logger.Logger) (func(), error) {
	cleanup := func() {}

	// Storage: Redis when configured, in-memory otherwise
	var (
		searchStore store.SearchStore
		resultCache store.ResultCache
	)
	if cfg.Redis.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		redisStore, err := store.NewRedis(ctx, cfg.Redis.URL, cfg.Redis.CacheTTL)
		if err != nil {
			return cleanup, fmt.Errorf("connect redis: %w", err)
		}
		searchStore = redisStore
		resultCache = redisStore
		cleanup = func() {
			if err := redisStore.Close(); err != nil {
				appLog.Error().Err(err).Msg("Error closing redis store")
			}
		}
		appLog.Info().Msg("Using redis store")
	} else {
		mem := store.NewMemory()
		searchStore = mem
		resultCache = mem
		appLog.Info().Msg("Using in-memory store")
	}

	// Upstream catalog client
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout)

	clock := timeutil.NewRealClock()

	// Use cases
	searchUC := usecase.NewSearchUseCase(catalogClient,
		usecase.WithResultCache(resultCache),
		usecase.WithLogger(appLog),
	)
	savedSearchUC := usecase.NewSavedSearchUseCase(searchStore, clock)
	historyUC := usecase.NewHistoryUseCase(searchStore)
	selectionUC := usecase.NewSelectionUseCase(catalogClient, clock, appLog)

	// Handlers and routes
	tourhttp.RegisterRoutes(e, tourhttp.Handlers{
		Search:      tourhttp.NewSearchHandler(searchUC),
		SavedSearch: tourhttp.NewSavedSearchHandler(savedSearchUC),
		History:     tourhttp.NewHistoryHandler(historyUC),
		Selection:   tourhttp.NewSelectionHandler(selectionUC),
	})

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return cleanup, nil
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, appLog *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	appLog.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		appLog.Error().Err(err).Msg("Error during server shutdown")
	}

	appLog.Info().Msg("Server stopped")
}
