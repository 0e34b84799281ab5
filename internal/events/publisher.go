package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/models"
)

var errProducerNotInitialised = errors.New("audit publisher: producer not initialised")

// SyncPublisher captures the producer behaviour required by the outcome
// publisher.
type SyncPublisher interface {
	PublishSync(topic string, key []byte, headers map[string][]byte, payload []byte) error
}

// OutcomePublisher emits dispatch audit events to a Kafka topic. Events are
// keyed by trace id so attempts for the same dispatch land on one
// partition.
type OutcomePublisher struct {
	producer SyncPublisher
	topic    string
	logger   zerolog.Logger
}

// NewOutcomePublisher constructs an OutcomePublisher. A nil producer yields
// a nil publisher, which callers treat as auditing disabled.
func NewOutcomePublisher(prod SyncPublisher, topic string, logger zerolog.Logger) *OutcomePublisher {
	if prod == nil {
		return nil
	}
	if reflect.ValueOf(logger).IsZero() {
		logger = zerolog.Nop()
	}
	return &OutcomePublisher{producer: prod, topic: topic, logger: logger}
}

// Publish writes the supplied dispatch event to the audit topic.
func (p *OutcomePublisher) Publish(_ context.Context, event models.DispatchEvent) error {
	if p == nil || p.producer == nil {
		return errProducerNotInitialised
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("audit publisher: marshal dispatch event: %w", err)
	}

	headers := map[string][]byte{
		"content-type": []byte("application/json"),
	}

	if err := p.producer.PublishSync(p.topic, []byte(event.TraceID), headers, payload); err != nil {
		return fmt.Errorf("audit publisher: publish dispatch event: %w", err)
	}

	p.logger.Debug().
		Str("trace_id", event.TraceID).
		Str("operation", event.Operation).
		Str("outcome", event.Outcome).
		Msg("dispatch audit event published")
	return nil
}
