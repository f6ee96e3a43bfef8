package llm

import (
	"errors"
	"fmt"
)

// Error represents a backend-neutral error from the generation layer.
type Error struct {
	Type       ErrorType
	Message    string
	Provider   string // identity of the originating backend, when applicable
	StatusCode int
	Cause      error // original backend-specific error
}

// ErrorType represents the category of error.
type ErrorType string

const (
	// ErrorTypeUnsupportedAuth is raised at factory-construction time for
	// an auth kind outside the closed enumeration. Fatal, never recovered.
	ErrorTypeUnsupportedAuth ErrorType = "unsupported_auth"

	// ErrorTypeBackend wraps any failure from an underlying client call.
	// Not retried locally; propagated with the backend identity preserved.
	ErrorTypeBackend ErrorType = "backend"

	// ErrorTypeMalformedToolCall marks a tool-call entry whose arguments
	// failed to parse as JSON. The adapters drop the offending entry and
	// keep the rest of the response usable.
	ErrorTypeMalformedToolCall ErrorType = "malformed_tool_call"

	// ErrorTypeInvalidRequest marks a request the layer itself rejected
	// before reaching any backend.
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying backend error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewUnsupportedAuthError creates the terminal error for an unrecognized or
// unset auth kind, naming the offending value.
func NewUnsupportedAuthError(authType string) *Error {
	return &Error{
		Type:    ErrorTypeUnsupportedAuth,
		Message: fmt.Sprintf("unsupported auth type: %q", authType),
	}
}

// NewBackendError wraps a failure from an underlying backend client.
func NewBackendError(provider, message string, cause error) *Error {
	return &Error{
		Type:     ErrorTypeBackend,
		Message:  message,
		Provider: provider,
		Cause:    cause,
	}
}

// NewMalformedToolCallError creates the error for a tool call whose
// arguments are not valid JSON.
func NewMalformedToolCallError(provider, callID, name string, cause error) *Error {
	return &Error{
		Type:     ErrorTypeMalformedToolCall,
		Message:  fmt.Sprintf("tool call %s (%s): arguments are not valid JSON", callID, name),
		Provider: provider,
		Cause:    cause,
	}
}

// NewInvalidRequestError creates an error for a request rejected by this
// layer before any backend call.
func NewInvalidRequestError(message string) *Error {
	return &Error{
		Type:    ErrorTypeInvalidRequest,
		Message: message,
	}
}

// IsUnsupportedAuth checks if an error is an unsupported-auth error.
func IsUnsupportedAuth(err error) bool {
	return isErrorType(err, ErrorTypeUnsupportedAuth)
}

// IsBackendError checks if an error wraps an underlying backend failure.
func IsBackendError(err error) bool {
	return isErrorType(err, ErrorTypeBackend)
}

// IsMalformedToolCall checks if an error marks an unparseable tool call.
func IsMalformedToolCall(err error) bool {
	return isErrorType(err, ErrorTypeMalformedToolCall)
}

func isErrorType(err error, t ErrorType) bool {
	var llmErr *Error
	if errors.As(err, &llmErr) {
		return llmErr.Type == t
	}
	return false
}
