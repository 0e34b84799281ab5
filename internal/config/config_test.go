package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MAILMODO_API_KEY", "key-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if cfg.Mailmodo.APIKey != "key-123" {
		t.Fatalf("unexpected api key: %q", cfg.Mailmodo.APIKey)
	}
	if cfg.Mailmodo.BaseURL != "https://api.mailmodo.com/api/v1" {
		t.Fatalf("unexpected base url default: %q", cfg.Mailmodo.BaseURL)
	}
	if cfg.Mailmodo.TimeoutSeconds != 5 {
		t.Fatalf("unexpected timeout default: %d", cfg.Mailmodo.TimeoutSeconds)
	}
	if cfg.Schedule.Offset != "+05:30" {
		t.Fatalf("unexpected offset default: %q", cfg.Schedule.Offset)
	}
	if cfg.Schedule.MinLeadSeconds != 60 {
		t.Fatalf("unexpected lead time default: %d", cfg.Schedule.MinLeadSeconds)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("expected auditing disabled by default, got brokers %v", cfg.Kafka.Brokers)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("MAILMODO_API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected validation failure without api key")
	}
	if !strings.Contains(err.Error(), "MAILMODO_API_KEY") {
		t.Fatalf("expected error to name the missing key, got %v", err)
	}
}

func TestLoadParsesBrokerList(t *testing.T) {
	t.Setenv("MAILMODO_API_KEY", "key-123")
	t.Setenv("KAFKA_BROKERS", "b1:9092, b2:9092 ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected load error: %v", err)
	}

	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "b1:9092" || cfg.Kafka.Brokers[1] != "b2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Kafka.AuditTopic != "campaign.dispatch.audit" {
		t.Fatalf("unexpected audit topic default: %q", cfg.Kafka.AuditTopic)
	}
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	t.Setenv("MAILMODO_API_KEY", "key-123")
	t.Setenv("MAILMODO_TIMEOUT_SECONDS", "-2")

	if _, err := Load(); err == nil {
		t.Fatalf("expected validation failure for negative timeout")
	}
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{"development": true, "dev": true, "DEVELOPMENT": true, "production": false, "": false} {
		if got := (AppConfig{Env: env}).IsDevelopment(); got != want {
			t.Fatalf("env %q: expected %v, got %v", env, got, want)
		}
	}
}
