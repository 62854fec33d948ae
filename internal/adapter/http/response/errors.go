// Package response provides standardized HTTP response builders for the tour search API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// BadRequest writes a 400 Bad Request response with the given error message.
func BadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeInvalidRequest,
		Message: message,
	})
}

// InvalidRequestBody writes a 400 Bad Request response for malformed request bodies.
func InvalidRequestBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeInvalidRequest,
		Message: MsgInvalidRequestBody,
	})
}

// ValidationError writes a 400 Bad Request response with validation error details.
func ValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: MsgValidationFailed,
		Details: details,
	})
}

// ValidationErrorWithMessage writes a 400 Bad Request response with a custom message.
func ValidationErrorWithMessage(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, &ErrorDetail{
		Code:    CodeValidationError,
		Message: message,
	})
}

// NotFound writes a 404 Not Found response with the given message.
func NotFound(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, &ErrorDetail{
		Code:    CodeNotFound,
		Message: message,
	})
}

// StaleRequest writes a 409 Conflict response for superseded search requests.
func StaleRequest(c echo.Context) error {
	return c.JSON(http.StatusConflict, &ErrorDetail{
		Code:    CodeStaleRequest,
		Message: MsgStaleRequest,
	})
}

// CatalogUnavailable writes a 502 Bad Gateway response for upstream failures.
func CatalogUnavailable(c echo.Context) error {
	return c.JSON(http.StatusBadGateway, &ErrorDetail{
		Code:    CodeCatalogUnavailable,
		Message: MsgCatalogUnavailable,
	})
}

// GatewayTimeout writes a 504 Gateway Timeout response.
func GatewayTimeout(c echo.Context) error {
	return c.JSON(http.StatusGatewayTimeout, &ErrorDetail{
		Code:    CodeTimeout,
		Message: MsgTimeout,
	})
}

// RequestCancelled writes a 504 Gateway Timeout response for cancelled requests.
func RequestCancelled(c echo.Context) error {
	return c.JSON(http.StatusGatewayTimeout, &ErrorDetail{
		Code:    CodeTimeout,
		Message: MsgRequestCancelled,
	})
}

// RateLimited writes a 429 Too Many Requests response.
func RateLimited(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, &ErrorDetail{
		Code:    CodeRateLimited,
		Message: MsgRateLimited,
	})
}

// InternalServerError writes a 500 Internal Server Error response.
func InternalServerError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, &ErrorDetail{
		Code:    CodeInternalError,
		Message: MsgInternalError,
	})
}
