package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config captures all runtime configuration for the campaign dispatch core.
// It is constructed once at process start and passed by reference to the
// components that need it; there is no ambient mutable global.
type Config struct {
	App      AppConfig
	Mailmodo MailmodoConfig
	Schedule ScheduleConfig
	Kafka    KafkaConfig
}

// AppConfig contains generic application level settings.
type AppConfig struct {
	Env      string
	LogLevel string
}

// IsDevelopment reports whether the process runs in a development
// environment where provider diagnostics may be shown to users.
func (a AppConfig) IsDevelopment() bool {
	return strings.EqualFold(a.Env, "development") || strings.EqualFold(a.Env, "dev")
}

// MailmodoConfig stores credentials and transport settings for the provider
// API.
type MailmodoConfig struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
	RawBodyLimit   int
}

// ScheduleConfig controls schedule timestamp composition. Offset is the
// fixed local offset all user-entered wall-clock times are assumed to be
// expressed in; it is never derived from the runtime timezone.
type ScheduleConfig struct {
	Offset         string
	MinLeadSeconds int
}

// KafkaConfig enables the optional dispatch audit trail. An empty broker
// list disables auditing entirely.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

// Load reads environment variables, applies defaults, validates required
// values and returns a populated Config instance.
func Load() (*Config, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &Config{}
	cfg.App.Env = ldr.getString("APP_ENV", "development", false)
	cfg.App.LogLevel = ldr.getString("LOG_LEVEL", "info", false)

	cfg.Mailmodo.APIKey = ldr.getString("MAILMODO_API_KEY", "", true)
	cfg.Mailmodo.BaseURL = ldr.getString("MAILMODO_BASE_URL", "https://api.mailmodo.com/api/v1", false)
	cfg.Mailmodo.TimeoutSeconds = ldr.getInt("MAILMODO_TIMEOUT_SECONDS", 5, false)
	cfg.Mailmodo.RawBodyLimit = ldr.getInt("MAILMODO_RAW_BODY_LIMIT", 1024, false)

	cfg.Schedule.Offset = ldr.getString("SCHEDULE_OFFSET", "+05:30", false)
	cfg.Schedule.MinLeadSeconds = ldr.getInt("SCHEDULE_MIN_LEAD_SECONDS", 60, false)

	cfg.Kafka.Brokers = ldr.getStringSlice("KAFKA_BROKERS", false)
	cfg.Kafka.AuditTopic = ldr.getString("KAFKA_AUDIT_TOPIC", "campaign.dispatch.audit", false)

	if cfg.Mailmodo.TimeoutSeconds <= 0 {
		ldr.addError("MAILMODO_TIMEOUT_SECONDS must be positive")
	}
	if len(cfg.Kafka.Brokers) > 0 && strings.TrimSpace(cfg.Kafka.AuditTopic) == "" {
		ldr.addError("KAFKA_AUDIT_TOPIC is required when KAFKA_BROKERS is set")
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config validation failed: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) getString(key, def string, required bool) string {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		return val
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getInt(key string, def int, required bool) int {
	if val, ok := os.LookupEnv(key); ok {
		val = strings.TrimSpace(val)
		if val == "" {
			if required {
				l.addError(fmt.Sprintf("%s is required", key))
			}
			return def
		}
		i, err := strconv.Atoi(val)
		if err != nil {
			l.addError(fmt.Sprintf("%s must be a valid integer", key))
			return def
		}
		return i
	}
	if required {
		l.addError(fmt.Sprintf("%s is required", key))
	}
	return def
}

func (l *envLoader) getStringSlice(key string, required bool) []string {
	raw := l.getString(key, "", required)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if required && len(out) == 0 {
		l.addError(fmt.Sprintf("%s must contain at least one entry", key))
	}
	return out
}

func (l *envLoader) addError(err string) {
	l.errs = append(l.errs, err)
}
