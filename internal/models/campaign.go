package models

import (
	"encoding/json"
	"time"
)

// Dispatch operation names used in receipts and audit events.
const (
	OperationSendNow        = "send_now"
	OperationSendScheduled  = "send_scheduled"
	OperationSendTest       = "send_test"
	OperationCreateCampaign = "create_campaign"
	OperationTrigger        = "trigger"
	OperationBulkAdd        = "bulk_add"
)

// Audit event outcomes.
const (
	OutcomeSent      = "sent"
	OutcomeScheduled = "scheduled"
	OutcomeFailed    = "failed"
)

// CampaignDefinition describes a new trigger campaign to be created at the
// provider. Name, TemplateID and Subject are required; the remaining fields
// are forwarded verbatim.
type CampaignDefinition struct {
	Name       string `json:"name"`
	TemplateID string `json:"templateId"`
	Subject    string `json:"subject"`
	FromName   string `json:"fromName,omitempty"`
	ReplyTo    string `json:"replyTo,omitempty"`
}

// TriggerRequest fires an existing trigger campaign at a single recipient.
type TriggerRequest struct {
	Email        string         `json:"email"`
	Subject      string         `json:"subject,omitempty"`
	ReplyTo      string         `json:"replyTo,omitempty"`
	FromName     string         `json:"fromName,omitempty"`
	CampaignData map[string]any `json:"campaign_data,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
	AddToList    string         `json:"addToList,omitempty"`
}

// DispatchReceipt is returned by every successful dispatch operation. Raw
// holds the provider's data payload untouched; Message is the provider's
// human readable acknowledgement when one was supplied.
type DispatchReceipt struct {
	TraceID     string
	Operation   string
	ScheduledAt string
	Message     string
	Raw         json.RawMessage
}

// BulkAddReceipt reports the outcome of a bulk contact upload. Accepted is
// the number of records submitted in the single bulk request; Raw carries
// the provider's acceptance echo.
type BulkAddReceipt struct {
	ListName string
	Accepted int
	Raw      json.RawMessage
}

// DispatchEvent is the audit record emitted after each dispatch attempt.
type DispatchEvent struct {
	TraceID     string    `json:"trace_id"`
	Operation   string    `json:"operation"`
	ListID      string    `json:"list_id,omitempty"`
	Subject     string    `json:"subject,omitempty"`
	ScheduledAt string    `json:"scheduled_at,omitempty"`
	Outcome     string    `json:"outcome"`
	ErrorKind   string    `json:"error_kind,omitempty"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
