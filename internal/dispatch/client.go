package dispatch

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/models"
	"github.com/example/campaign-dispatch/internal/provider/mailmodo"
	"github.com/example/campaign-dispatch/internal/schedule"
)

// TestSubjectPrefix marks test sends so recipients can tell them apart from
// real campaigns.
const TestSubjectPrefix = "[TEST] "

// Provider endpoint paths used by the dispatch client.
const (
	pathBroadcast      = "/broadcastCampaign"
	pathSchedule       = "/scheduleCampaign"
	pathTestSend       = "/sendTestEmail"
	pathCreateCampaign = "/createTriggerCampaign"
	pathTrigger        = "/triggerCampaign/%s"
)

// Transport is the subset of the provider client the dispatch client needs.
// Tests substitute a counting fake to assert that precondition failures
// never reach the network.
type Transport interface {
	Post(ctx context.Context, path string, body any) (*mailmodo.Envelope, error)
}

// Publisher receives an audit event after every dispatch attempt. A nil
// publisher disables auditing.
type Publisher interface {
	Publish(ctx context.Context, event models.DispatchEvent) error
}

// Option customises the dispatch client.
type Option func(*Client)

// WithPublisher attaches an audit event publisher. Publish failures are
// logged and never affect the dispatch outcome.
func WithPublisher(p Publisher) Option {
	return func(c *Client) {
		c.publisher = p
	}
}

// WithClock overrides the clock used for audit event timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTraceIDs swaps the trace id generator, useful for deterministic
// tests.
func WithTraceIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newTraceID = gen
		}
	}
}

// Client builds and sends campaign requests against the provider, selecting
// the endpoint based on presence of a schedule. It performs no retries; a
// failed attempt is terminal and the caller decides what happens next.
type Client struct {
	logger     zerolog.Logger
	transport  Transport
	publisher  Publisher
	now        func() time.Time
	newTraceID func() string
}

// NewClient constructs a dispatch client using the provided transport.
func NewClient(transport Transport, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if transport == nil {
		return nil, errors.New("dispatch client: transport dependency is required")
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}

	c := &Client{
		logger:     logger,
		transport:  transport,
		now:        time.Now,
		newTraceID: uuid.NewString,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	return c, nil
}

type broadcastPayload struct {
	ListID       string `json:"listId"`
	Subject      string `json:"subject"`
	CampaignData string `json:"campaign_data"`
}

type schedulePayload struct {
	ListID         string `json:"listId"`
	Subject        string `json:"subject"`
	CampaignData   string `json:"campaign_data"`
	ScheduledAt    string `json:"scheduledAt"`
	IdempotencyKey string `json:"idempotencyKey"`
}

type testSendPayload struct {
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// SendNow posts an immediate broadcast to the given list.
func (c *Client) SendNow(ctx context.Context, listID, subject, html string) (*models.DispatchReceipt, error) {
	if err := requireFields(field{"listId", listID}, field{"subject", subject}, field{"content", html}); err != nil {
		return nil, c.reject(ctx, models.OperationSendNow, listID, subject, "", err)
	}

	payload := broadcastPayload{ListID: listID, Subject: subject, CampaignData: html}
	return c.post(ctx, models.OperationSendNow, pathBroadcast, payload, listID, subject, "")
}

// SendScheduled posts a scheduled broadcast. The scheduledAt field and the
// idempotency key are always the same canonical timestamp string, so a
// re-submitted identical schedule deduplicates at the provider instead of
// double-sending.
func (c *Client) SendScheduled(ctx context.Context, listID, subject, html string, ts schedule.Timestamp) (*models.DispatchReceipt, error) {
	if err := requireFields(field{"listId", listID}, field{"subject", subject}, field{"content", html}, field{"scheduledAt", ts.String()}); err != nil {
		return nil, c.reject(ctx, models.OperationSendScheduled, listID, subject, ts.String(), err)
	}

	payload := schedulePayload{
		ListID:         listID,
		Subject:        subject,
		CampaignData:   html,
		ScheduledAt:    ts.String(),
		IdempotencyKey: ts.IdempotencyKey(),
	}
	return c.post(ctx, models.OperationSendScheduled, pathSchedule, payload, listID, subject, ts.String())
}

// SendTest delivers the campaign content to a single recipient with the
// subject prefixed by TestSubjectPrefix.
func (c *Client) SendTest(ctx context.Context, email, subject, html string) (*models.DispatchReceipt, error) {
	if err := requireFields(field{"email", email}, field{"subject", subject}, field{"content", html}); err != nil {
		return nil, c.reject(ctx, models.OperationSendTest, "", subject, "", err)
	}

	payload := testSendPayload{Email: email, Subject: TestSubjectPrefix + subject, Content: html}
	return c.post(ctx, models.OperationSendTest, pathTestSend, payload, "", subject, "")
}

// CreateCampaign registers a new trigger campaign at the provider.
func (c *Client) CreateCampaign(ctx context.Context, def models.CampaignDefinition) (*models.DispatchReceipt, error) {
	if err := requireFields(field{"name", def.Name}, field{"templateId", def.TemplateID}, field{"subject", def.Subject}); err != nil {
		return nil, c.reject(ctx, models.OperationCreateCampaign, "", def.Subject, "", err)
	}

	return c.post(ctx, models.OperationCreateCampaign, pathCreateCampaign, def, "", def.Subject, "")
}

// Trigger fires an existing trigger campaign at a single recipient.
func (c *Client) Trigger(ctx context.Context, campaignID string, req models.TriggerRequest) (*models.DispatchReceipt, error) {
	if err := requireFields(field{"campaignId", campaignID}, field{"email", req.Email}); err != nil {
		return nil, c.reject(ctx, models.OperationTrigger, "", req.Subject, "", err)
	}

	path := fmt.Sprintf(pathTrigger, campaignID)
	return c.post(ctx, models.OperationTrigger, path, req, "", req.Subject, "")
}

func (c *Client) post(ctx context.Context, operation, path string, payload any, listID, subject, scheduledAt string) (*models.DispatchReceipt, error) {
	traceID := c.newTraceID()

	envelope, err := c.transport.Post(ctx, path, payload)
	if err != nil {
		kind := ""
		if apiErr, ok := mailmodo.AsAPIError(err); ok {
			kind = string(apiErr.Kind)
		}
		c.logger.Info().
			Str("trace_id", traceID).
			Str("operation", operation).
			Str("list_id", listID).
			Str("kind", kind).
			Err(err).
			Msg("campaign dispatch failed")
		c.publish(ctx, models.DispatchEvent{
			TraceID:     traceID,
			Operation:   operation,
			ListID:      listID,
			Subject:     subject,
			ScheduledAt: scheduledAt,
			Outcome:     models.OutcomeFailed,
			ErrorKind:   kind,
			Error:       err.Error(),
			Timestamp:   c.now().UTC(),
		})
		return nil, err
	}

	c.logger.Debug().
		Str("trace_id", traceID).
		Str("operation", operation).
		Str("list_id", listID).
		Msg("campaign dispatch succeeded")

	outcome := models.OutcomeSent
	if scheduledAt != "" {
		outcome = models.OutcomeScheduled
	}
	c.publish(ctx, models.DispatchEvent{
		TraceID:     traceID,
		Operation:   operation,
		ListID:      listID,
		Subject:     subject,
		ScheduledAt: scheduledAt,
		Outcome:     outcome,
		Timestamp:   c.now().UTC(),
	})

	return &models.DispatchReceipt{
		TraceID:     traceID,
		Operation:   operation,
		ScheduledAt: scheduledAt,
		Message:     envelope.Message,
		Raw:         envelope.Data,
	}, nil
}

func (c *Client) reject(ctx context.Context, operation, listID, subject, scheduledAt string, err error) error {
	traceID := c.newTraceID()
	c.logger.Info().
		Str("trace_id", traceID).
		Str("operation", operation).
		Str("list_id", listID).
		Err(err).
		Msg("campaign dispatch rejected before transport")
	c.publish(ctx, models.DispatchEvent{
		TraceID:     traceID,
		Operation:   operation,
		ListID:      listID,
		Subject:     subject,
		ScheduledAt: scheduledAt,
		Outcome:     models.OutcomeFailed,
		ErrorKind:   string(mailmodo.KindInvalidRequest),
		Error:       err.Error(),
		Timestamp:   c.now().UTC(),
	})
	return err
}

func (c *Client) publish(ctx context.Context, event models.DispatchEvent) {
	if c.publisher == nil {
		return
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Error().
			Str("trace_id", event.TraceID).
			Err(err).
			Msg("dispatch audit publish failed")
	}
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return mailmodo.NewInvalidRequest("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}
