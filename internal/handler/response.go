package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabs/internal/domain"
	"cabs/internal/repository"
	"cabs/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps domain/service/repository errors to HTTP status
// codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrClientNotFound),
		errors.Is(err, service.ErrDriverNotFound),
		errors.Is(err, service.ErrTransitNotFound),
		errors.Is(err, service.ErrClaimNotFound),
		errors.Is(err, service.ErrCarTypeNotFound),
		errors.Is(err, service.ErrDriverFeeNotDefined):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrEmptyAddress):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrAcceptInProgress),
		errors.Is(err, service.ErrClaimResolutionInProgress):
		return http.StatusConflict

	// Business rule violations
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotAcceptable):
		return http.StatusNotAcceptable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
