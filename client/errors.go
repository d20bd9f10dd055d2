package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Code classifies API-level response failures.
type Code int

const (
	// CodeStatus indicates a non-2xx HTTP status.
	CodeStatus Code = iota
	// CodeEmptyBody indicates a success status with an empty body where
	// content was expected.
	CodeEmptyBody
	// CodeDecode indicates the payload could not be parsed into the declared
	// raw kind, or the typed decode rejected the raw value.
	CodeDecode
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeStatus:
		return "status"
	case CodeEmptyBody:
		return "empty_body"
	case CodeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// ResponseError is a structured API-level failure. It always carries an HTTP
// status: the wire status for status errors, 400 for empty bodies, and 500
// for decode failures regardless of the original status.
type ResponseError struct {
	// Status is the HTTP status reported for this failure.
	Status int
	// Code classifies the failure.
	Code Code
	// Message describes the failure.
	Message string
	// Body is the raw response body (may be nil).
	Body []byte
	// Cause is the underlying error, set for decode failures.
	Cause error
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("client: %s (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ResponseError) Unwrap() error { return e.Cause }

// NewEmptyBodyError creates the error for an empty body on a success status.
func NewEmptyBodyError() *ResponseError {
	return &ResponseError{
		Status:  http.StatusBadRequest,
		Code:    CodeEmptyBody,
		Message: "Response was empty",
	}
}

// NewDecodeError creates the error for a failed raw parse or typed decode.
// The original cause is preserved and the status is always 500, keeping
// decode errors distinguishable from server-reported statuses.
func NewDecodeError(cause error, body []byte) *ResponseError {
	return &ResponseError{
		Status:  http.StatusInternalServerError,
		Code:    CodeDecode,
		Message: fmt.Sprintf("decode response: %v", cause),
		Body:    body,
		Cause:   cause,
	}
}

// NewStatusError creates the error for a non-2xx wire status. The message is
// derived from the body when possible: JSON error envelopes are probed for
// conventional keys, plain text is included as-is.
func NewStatusError(status int, body []byte) *ResponseError {
	return &ResponseError{
		Status:  status,
		Code:    CodeStatus,
		Message: statusMessage(status, body),
		Body:    body,
	}
}

// statusMessage derives a human-readable message from an error response
// body.
func statusMessage(status int, body []byte) string {
	if len(body) == 0 {
		return "Response was empty"
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		for _, key := range []string{"error", "message", "detail"} {
			raw, ok := envelope[key]
			if !ok {
				continue
			}
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				return msg
			}
			return string(raw)
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", status)
}

// IsEmptyBody checks if an error is an empty-body failure.
func IsEmptyBody(err error) bool {
	var e *ResponseError
	return errors.As(err, &e) && e.Code == CodeEmptyBody
}

// IsDecodeFailure checks if an error is a decode failure.
func IsDecodeFailure(err error) bool {
	var e *ResponseError
	return errors.As(err, &e) && e.Code == CodeDecode
}

// IsStatusError checks if an error is a non-2xx status failure.
func IsStatusError(err error) bool {
	var e *ResponseError
	return errors.As(err, &e) && e.Code == CodeStatus
}

// TransportError wraps a transport-level failure: connection refused, DNS,
// timeout, cancellation. Unlike ResponseError it is returned as a Go error
// and never converted into response data.
type TransportError struct {
	// Timeout reports whether the failure was a timeout or context expiry.
	Timeout bool
	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("client: timeout: %v", e.Err)
	}
	return fmt.Sprintf("client: connection: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error { return e.Err }

// IsTimeout checks if an error is a timeout-classified transport failure.
func IsTimeout(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && e.Timeout
}

// IsConnection checks if an error is a non-timeout transport failure.
func IsConnection(err error) bool {
	var e *TransportError
	return errors.As(err, &e) && !e.Timeout
}
