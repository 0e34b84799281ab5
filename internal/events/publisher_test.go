package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/events"
	"github.com/example/campaign-dispatch/internal/models"
)

type fakeSyncPublisher struct {
	topic   string
	key     []byte
	headers map[string][]byte
	payload []byte
	err     error
}

func (f *fakeSyncPublisher) PublishSync(topic string, key []byte, headers map[string][]byte, payload []byte) error {
	f.topic = topic
	f.key = key
	f.headers = headers
	f.payload = payload
	return f.err
}

func TestPublishDispatchEvent(t *testing.T) {
	prod := &fakeSyncPublisher{}
	pub := events.NewOutcomePublisher(prod, "campaign.dispatch.audit", zerolog.Nop())
	if pub == nil {
		t.Fatalf("expected publisher to be constructed")
	}

	event := models.DispatchEvent{
		TraceID:   "trace-1",
		Operation: models.OperationSendNow,
		ListID:    "list-1",
		Outcome:   models.OutcomeSent,
		Timestamp: time.Date(2025, 7, 4, 11, 0, 0, 0, time.UTC),
	}

	if err := pub.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected publish error: %v", err)
	}

	if prod.topic != "campaign.dispatch.audit" {
		t.Fatalf("unexpected topic: %s", prod.topic)
	}
	if string(prod.key) != "trace-1" {
		t.Fatalf("expected trace id key, got %q", prod.key)
	}
	if string(prod.headers["content-type"]) != "application/json" {
		t.Fatalf("expected json content type header")
	}

	var decoded models.DispatchEvent
	if err := json.Unmarshal(prod.payload, &decoded); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if decoded.Operation != models.OperationSendNow || decoded.Outcome != models.OutcomeSent {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestPublishPropagatesProducerFailure(t *testing.T) {
	prod := &fakeSyncPublisher{err: errors.New("broker down")}
	pub := events.NewOutcomePublisher(prod, "campaign.dispatch.audit", zerolog.Nop())

	if err := pub.Publish(context.Background(), models.DispatchEvent{TraceID: "t"}); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestNilProducerDisablesPublisher(t *testing.T) {
	if pub := events.NewOutcomePublisher(nil, "topic", zerolog.Nop()); pub != nil {
		t.Fatalf("expected nil publisher for nil producer")
	}

	var pub *events.OutcomePublisher
	if err := pub.Publish(context.Background(), models.DispatchEvent{}); err == nil {
		t.Fatalf("expected error publishing through nil publisher")
	}
}
