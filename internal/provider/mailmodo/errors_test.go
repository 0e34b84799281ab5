package mailmodo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyStatusTable(t *testing.T) {
	cases := []struct {
		status int
		kind   Kind
	}{
		{400, KindInvalidRequest},
		{401, KindAuthenticationFailed},
		{403, KindForbidden},
		{404, KindNotFound},
		{429, KindRateLimited},
		{422, KindProviderError},
		{500, KindProviderError},
		{503, KindProviderError},
	}

	for _, tc := range cases {
		apiErr := Classify(tc.status, nil, DefaultRawBodyLimit)
		if apiErr.Kind != tc.kind {
			t.Fatalf("status %d: expected kind %s, got %s", tc.status, tc.kind, apiErr.Kind)
		}
		if apiErr.StatusCode != tc.status {
			t.Fatalf("status %d: status code not retained: %d", tc.status, apiErr.StatusCode)
		}
	}
}

func TestClassifyExtractsBodyMessage(t *testing.T) {
	body := []byte(`{"success":false,"message":"list does not exist"}`)

	apiErr := Classify(500, body, DefaultRawBodyLimit)
	if apiErr.Message != "list does not exist" {
		t.Fatalf("expected body message, got %q", apiErr.Message)
	}
	if apiErr.RawBody != string(body) {
		t.Fatalf("expected raw body retained, got %q", apiErr.RawBody)
	}
}

func TestClassifyFallsBackToStatusText(t *testing.T) {
	apiErr := Classify(502, []byte("not json"), DefaultRawBodyLimit)
	if apiErr.Message != "Bad Gateway" {
		t.Fatalf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestClassifyTruncatesRawBody(t *testing.T) {
	body := []byte(strings.Repeat("x", 5000))

	apiErr := Classify(500, body, DefaultRawBodyLimit)
	if len(apiErr.RawBody) != DefaultRawBodyLimit {
		t.Fatalf("expected raw body truncated to %d, got %d", DefaultRawBodyLimit, len(apiErr.RawBody))
	}
}

func TestClassifyTransport(t *testing.T) {
	if apiErr := ClassifyTransport(context.DeadlineExceeded); apiErr.Kind != KindTimeout {
		t.Fatalf("expected timeout kind for deadline, got %s", apiErr.Kind)
	}
	if apiErr := ClassifyTransport(errors.New("dial tcp: connection refused")); apiErr.Kind != KindNetworkUnavailable {
		t.Fatalf("expected network kind for connection error, got %s", apiErr.Kind)
	}
	if apiErr := ClassifyTransport(nil); apiErr.StatusCode != 0 {
		t.Fatalf("expected zero status when no response was received, got %d", apiErr.StatusCode)
	}
}

func TestRetryableFlags(t *testing.T) {
	retryable := map[Kind]bool{
		KindInvalidRequest:       false,
		KindAuthenticationFailed: false,
		KindForbidden:            false,
		KindNotFound:             false,
		KindRateLimited:          true,
		KindProviderError:        false,
		KindNetworkUnavailable:   false,
		KindTimeout:              true,
	}

	for kind, want := range retryable {
		if kind.Retryable() != want {
			t.Fatalf("kind %s: expected retryable=%v", kind, want)
		}
	}
}

func TestUserMessageHidesDetailsOutsideDevelopment(t *testing.T) {
	apiErr := Classify(401, []byte(`{"message":"key 123 revoked"}`), DefaultRawBodyLimit)

	if got := apiErr.UserMessage(false); got != KindAuthenticationFailed.CanonicalMessage() {
		t.Fatalf("expected canonical message outside development, got %q", got)
	}
	if got := apiErr.UserMessage(true); got != "key 123 revoked" {
		t.Fatalf("expected provider message in development, got %q", got)
	}
}

func TestAsAPIError(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewInvalidRequest("subject is required"))

	apiErr, ok := AsAPIError(wrapped)
	if !ok {
		t.Fatalf("expected APIError to unwrap")
	}
	if apiErr.Kind != KindInvalidRequest {
		t.Fatalf("unexpected kind: %s", apiErr.Kind)
	}

	if _, ok := AsAPIError(errors.New("plain")); ok {
		t.Fatalf("expected plain error not to unwrap")
	}
}
