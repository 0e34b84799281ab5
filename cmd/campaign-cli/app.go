package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/example/campaign-dispatch/internal/config"
	"github.com/example/campaign-dispatch/internal/dispatch"
	"github.com/example/campaign-dispatch/internal/events"
	"github.com/example/campaign-dispatch/internal/lists"
	"github.com/example/campaign-dispatch/internal/logger"
	"github.com/example/campaign-dispatch/internal/provider/mailmodo"
)

// app bundles the wired core components behind the CLI commands.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	dispatch *dispatch.Client
	lists    *lists.Service
	producer *events.Producer
}

// newApp loads configuration and wires the core: config, logger, provider
// client, dispatch and list services, plus the optional Kafka audit trail
// when brokers are configured.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}

	baseLogger, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init: %w", err)
	}
	log := baseLogger.With().Str("service", "campaign-cli").Logger()

	client, err := mailmodo.NewClient(cfg.Mailmodo, log.With().Str("component", "mailmodo-client").Logger())
	if err != nil {
		return nil, fmt.Errorf("mailmodo client init: %w", err)
	}

	a := &app{cfg: cfg, log: log}

	var dispatchOpts []dispatch.Option
	if len(cfg.Kafka.Brokers) > 0 {
		prod, err := events.NewProducer(cfg.Kafka.Brokers, log.With().Str("component", "audit-producer").Logger())
		if err != nil {
			return nil, fmt.Errorf("audit producer init: %w", err)
		}
		a.producer = prod

		publisher := events.NewOutcomePublisher(prod, cfg.Kafka.AuditTopic, log.With().Str("component", "audit-publisher").Logger())
		if publisher != nil {
			dispatchOpts = append(dispatchOpts, dispatch.WithPublisher(publisher))
		}
	}

	a.dispatch, err = dispatch.NewClient(client, log.With().Str("component", "dispatch-client").Logger(), dispatchOpts...)
	if err != nil {
		return nil, fmt.Errorf("dispatch client init: %w", err)
	}

	a.lists, err = lists.NewService(client, log.With().Str("component", "list-service").Logger())
	if err != nil {
		return nil, fmt.Errorf("list service init: %w", err)
	}

	return a, nil
}

// close releases resources held by the optional audit producer.
func (a *app) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close audit producer")
		}
	}
}

// renderError formats a dispatch failure for the terminal. Typed provider
// errors show their canonical message; raw provider details appear only in
// development mode.
func (a *app) renderError(err error) error {
	apiErr, ok := mailmodo.AsAPIError(err)
	if !ok {
		return err
	}

	msg := apiErr.UserMessage(a.cfg.App.IsDevelopment())
	if apiErr.Retryable() {
		msg += " (safe to retry)"
	}
	if a.cfg.App.IsDevelopment() && apiErr.RawBody != "" {
		msg += "\nprovider response: " + apiErr.RawBody
	}
	return fmt.Errorf("%s", msg)
}

func readFileArg(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
