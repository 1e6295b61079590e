package errors

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
)

// error categories for classification
const (
	CategoryValidation = "validation"
	CategoryMethod     = "method"
	CategoryDownstream = "downstream"
	CategoryDecode     = "decode"
	CategoryInFlight   = "in_flight"
	CategoryNetwork    = "network"
	CategoryTimeout    = "timeout"
	CategoryCanceled   = "canceled"
	CategoryUnknown    = "unknown"
)

// analyzes an error and returns its category and sanitized message
func Classify(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{CategoryUnknown, ""}
	}

	isProduction := os.Getenv("ENVIRONMENT") == "production"

	// context errors first: a cancelled call also looks like a network failure
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorInfo{CategoryTimeout, ternary(isProduction, "request timed out", err.Error())}
	}

	if errors.Is(err, context.Canceled) {
		return ErrorInfo{CategoryCanceled, ternary(isProduction, "request canceled", err.Error())}
	}

	if errors.Is(err, ErrValidation) || errors.Is(err, ErrEmptySubmission) {
		return ErrorInfo{CategoryValidation, ternary(isProduction, "validation failed", err.Error())}
	}

	if errors.Is(err, ErrMethodNotAllowed) {
		return ErrorInfo{CategoryMethod, "method not allowed"}
	}

	if errors.Is(err, ErrInFlight) {
		return ErrorInfo{CategoryInFlight, ErrInFlight.Error()}
	}

	if errors.Is(err, ErrDecode) {
		return ErrorInfo{CategoryDecode, ternary(isProduction, "invalid response from generation service", err.Error())}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrorInfo{CategoryTimeout, ternary(isProduction, "request timed out", err.Error())}
		}

		return ErrorInfo{CategoryNetwork, ternary(isProduction, "connection error occurred", err.Error())}
	}

	if errors.Is(err, ErrDownstream) {
		return ErrorInfo{CategoryDownstream, ternary(isProduction, "generation service failed", err.Error())}
	}

	// fallback to string matching for unknown error types
	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "deadline") {
		return ErrorInfo{CategoryTimeout, ternary(isProduction, "request timed out", err.Error())}
	}

	if strings.Contains(errMsg, "connection") || strings.Contains(errMsg, "dial") {
		return ErrorInfo{CategoryNetwork, ternary(isProduction, "connection error occurred", err.Error())}
	}

	return ErrorInfo{CategoryUnknown, ternary(isProduction, "an error occurred", err.Error())}
}

// sanitizes error messages for production
func sanitizeError(err error) string {
	if err == nil {
		return ""
	}

	return Classify(err).Sanitized()
}

// ternary helper for cleaner conditional assignment
func ternary(condition bool, trueVal, falseVal string) string {
	if condition {
		return trueVal
	}

	return falseVal
}
