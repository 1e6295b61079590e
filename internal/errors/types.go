package errors

import "errors"

// represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`             // error code (e.g., "validation_error", "bad_gateway")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// failure taxonomy shared by the gateway and the dispatcher
var (
	ErrValidation       = errors.New("validation failed")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrDownstream       = errors.New("failed to generate paper")
	ErrDecode           = errors.New("could not decode generation response")
	ErrInFlight         = errors.New("a submission is already in progress")
	ErrEmptySubmission  = errors.New("enter a repository url or documentation")
)

// a non-success answer from the generation service.
// the status is kept for logging; callers only see the generic message
type DownstreamError struct {
	StatusCode int
	Body       string
}

func (e *DownstreamError) Error() string {
	return ErrDownstream.Error()
}

func (e *DownstreamError) Unwrap() error {
	return ErrDownstream
}

// wraps a sentinel with a caller-facing message: Error() returns msg, errors.Is matches kind
func Wrap(kind error, msg string) error {
	return &taggedError{kind: kind, msg: msg}
}

type taggedError struct {
	kind error
	msg  string
}

func (e *taggedError) Error() string {
	return e.msg
}

func (e *taggedError) Unwrap() error {
	return e.kind
}

// re-exported so callers importing this package do not also need the standard one
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func New(text string) error {
	return errors.New(text)
}

type ErrorInfo struct {
	category  string
	sanitized string
}

func (i ErrorInfo) Category() string {
	return i.category
}

func (i ErrorInfo) Sanitized() string {
	return i.sanitized
}
