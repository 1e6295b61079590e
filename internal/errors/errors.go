package errors

import (
	"net/http"

	"codeberg.org/papergen/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.BadGateway(), errors.ValidationError(), etc. for request-ending errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.BadGateway() for the same error
//
// For the tui:
//   - Every failure is reduced to one string with DisplayMessage()
//
// For services/clients/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Wrap one of the taxonomy sentinels (ErrValidation, ErrDownstream, ...) so callers can errors.Is
//   - Do not log errors in non-handler code (avoid double logging)

// standard error codes
const (
	CodeValidationError  = "validation_error"
	CodeBadRequest       = "bad_request"
	CodeMethodNotAllowed = "method_not_allowed"
	CodeTooManyRequests  = "too_many_requests"
	CodeBadGateway       = "bad_gateway"
	CodeServerError      = "server_error"
)

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for missing or invalid input
func ValidationError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "validation failed"
	}

	response := ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
	}

	if err != nil {
		response.Details = sanitizeError(err)
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 405 method not allowed error
func MethodNotAllowed(c *gin.Context, message string) {
	if message == "" {
		message = "method not allowed"
	}

	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, ErrorResponse{
		Error:   CodeMethodNotAllowed,
		Message: message,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 502 for failures of the generation service (transport, status or decode)
func BadGateway(c *gin.Context, message string, err error) {
	if message == "" {
		message = "generation service failed"
	}

	args := []any{
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"category", Classify(err).Category(),
	}

	var downstream *DownstreamError
	if As(err, &downstream) {
		args = append(args, "downstream_status", downstream.StatusCode)
	}

	logger.FromContext(c.Request.Context()).Error(message, append(args, "error", err)...)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeBadGateway,
		Message: message,
		Details: sanitizeError(err),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logger.FromContext(c.Request.Context()).Error(message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"error", err,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: sanitizeError(err),
	})
}
