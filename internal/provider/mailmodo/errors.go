package mailmodo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"unicode/utf8"
)

// DefaultRawBodyLimit defines the maximum number of characters retained
// from a provider response body when attaching it to an APIError.
const DefaultRawBodyLimit = 1024

// Kind is the closed enumeration of normalized provider failure kinds.
// Callers pattern-match on the kind; there is no error class hierarchy.
type Kind string

const (
	KindInvalidRequest       Kind = "invalid_request"
	KindAuthenticationFailed Kind = "authentication_failed"
	KindForbidden            Kind = "forbidden"
	KindNotFound             Kind = "not_found"
	KindRateLimited          Kind = "rate_limited"
	KindProviderError        Kind = "provider_error"
	KindNetworkUnavailable   Kind = "network_unavailable"
	KindTimeout              Kind = "timeout"
)

// Retryable reports whether a failure of this kind is eligible for a
// caller-driven retry. The core itself never retries.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindTimeout
}

// CanonicalMessage returns the user-facing message for the kind. Raw
// provider details are withheld from end users outside development mode.
func (k Kind) CanonicalMessage() string {
	switch k {
	case KindInvalidRequest:
		return "Invalid request data"
	case KindAuthenticationFailed:
		return "Authentication failed. Please check your API key."
	case KindForbidden:
		return "Access forbidden. Please check your permissions."
	case KindNotFound:
		return "Resource not found"
	case KindRateLimited:
		return "Rate limit exceeded. Please try again later."
	case KindNetworkUnavailable:
		return "Network error or service unavailable"
	case KindTimeout:
		return "Request timeout"
	default:
		return "An error occurred with the provider API"
	}
}

// APIError is the single typed error produced by the transport layer and by
// local precondition checks. StatusCode is zero when no response was
// received; RawBody retains the (truncated) provider body for logging.
type APIError struct {
	Kind       Kind
	StatusCode int
	Message    string
	RawBody    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("mailmodo: %s (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("mailmodo: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the caller may retry the failed attempt.
func (e *APIError) Retryable() bool { return e.Kind.Retryable() }

// UserMessage returns the message suitable for end users. Development mode
// exposes the specific provider message instead of the canonical one.
func (e *APIError) UserMessage(development bool) string {
	if development && e.Message != "" {
		return e.Message
	}
	return e.Kind.CanonicalMessage()
}

// NewInvalidRequest builds the local precondition failure raised before any
// network call is made.
func NewInvalidRequest(message string) *APIError {
	return &APIError{Kind: KindInvalidRequest, Message: message}
}

// AsAPIError unwraps an *APIError from err when one is present.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// Classify maps an HTTP failure response to its normalized kind. The raw
// body is retained (truncated to limit) and a provider-supplied message is
// extracted from the body when one exists.
func Classify(statusCode int, body []byte, limit int) *APIError {
	kind := KindProviderError
	switch statusCode {
	case http.StatusBadRequest:
		kind = KindInvalidRequest
	case http.StatusUnauthorized:
		kind = KindAuthenticationFailed
	case http.StatusForbidden:
		kind = KindForbidden
	case http.StatusNotFound:
		kind = KindNotFound
	case http.StatusTooManyRequests:
		kind = KindRateLimited
	}

	message := bodyMessage(body)
	if message == "" {
		if kind == KindProviderError {
			if text := http.StatusText(statusCode); text != "" {
				message = text
			} else {
				message = kind.CanonicalMessage()
			}
		} else {
			message = kind.CanonicalMessage()
		}
	}

	return &APIError{
		Kind:       kind,
		StatusCode: statusCode,
		Message:    message,
		RawBody:    truncate(string(body), limit),
	}
}

// ClassifyTransport maps an error raised before any response was received.
// Context deadlines and net timeouts become KindTimeout; everything else is
// connectivity and becomes KindNetworkUnavailable.
func ClassifyTransport(err error) *APIError {
	kind := KindNetworkUnavailable
	if isTimeout(err) {
		kind = KindTimeout
	}
	message := kind.CanonicalMessage()
	if err != nil {
		message = err.Error()
	}
	return &APIError{Kind: kind, Message: message}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func bodyMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var envelope struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	return envelope.Message
}

func truncate(raw string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(raw) <= limit {
		return raw
	}
	runes := []rune(raw)
	return string(runes[:limit])
}
