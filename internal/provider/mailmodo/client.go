package mailmodo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/config"
)

// maxResponseBytes bounds how much of a provider response is read into
// memory regardless of the raw-body retention limit.
const maxResponseBytes = 1 << 20

// Envelope is the provider's standard response body: a success flag plus a
// data payload. Data is left raw so callers decode only the shape they
// expect.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Option customises the client during construction.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the per-call timeout bounding every network
// operation.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// Client is a thin JSON client for the provider API. Every call carries the
// API key header, a JSON content type and a bounded timeout; failures are
// normalized into *APIError values.
type Client struct {
	logger       zerolog.Logger
	httpClient   *http.Client
	baseURL      string
	apiKey       string
	timeout      time.Duration
	rawBodyLimit int
}

// NewClient constructs a provider client from configuration.
func NewClient(cfg config.MailmodoConfig, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("mailmodo client: api key is required")
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("mailmodo client: base url is required")
	}

	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	timeout := 5 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	limit := cfg.RawBodyLimit
	if limit <= 0 {
		limit = DefaultRawBodyLimit
	}

	c := &Client{
		logger:       logger,
		httpClient:   &http.Client{},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		timeout:      timeout,
		rawBodyLimit: limit,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

// Post sends a JSON body to the given provider path.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Get fetches a provider resource.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("mailmodo client: marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reader)
	if err != nil {
		return nil, fmt.Errorf("mailmodo client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("mmApiKey", c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := ClassifyTransport(err)
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Str("kind", string(apiErr.Kind)).
			Dur("elapsed", time.Since(start)).
			Msg("provider call failed before a response was received")
		return nil, apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := ClassifyTransport(err)
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Str("kind", string(apiErr.Kind)).
			Msg("provider response body read failed")
		return nil, apiErr
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := Classify(resp.StatusCode, raw, c.rawBodyLimit)
		c.logger.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("kind", string(apiErr.Kind)).
			Dur("elapsed", time.Since(start)).
			Msg("provider call rejected")
		return nil, apiErr
	}

	envelope := &Envelope{Success: true}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, envelope); err != nil {
			return nil, &APIError{
				Kind:       KindProviderError,
				StatusCode: resp.StatusCode,
				Message:    "malformed provider response body",
				RawBody:    truncate(string(raw), c.rawBodyLimit),
			}
		}
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("provider call succeeded")

	return envelope, nil
}
