package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Setup registers all middleware on the Echo instance in the correct order.
// The order is important:
//  1. RequestID - First, to generate/propagate request ID for all subsequent logging
//  2. RequestLogger - Second, logs all requests with request ID
//  3. Recover - Third, catches panics and returns 500 (wraps handlers)
//
// This function should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
}

// SetupWithRateLimit registers the standard middleware plus the per-client
// rate limiter, applied after logging so rejections are logged too.
func SetupWithRateLimit(e *echo.Echo, log zerolog.Logger, cfg RateLimitConfig) {
	e.Use(RequestID())
	e.Use(RequestLogger(log))
	e.Use(Recover(log))
	e.Use(RateLimit(log, cfg))
}
