package telemetry

import (
	"context"
	"errors"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// Telemetry bundles logging, tracing, metrics and events for one process.
type Telemetry struct {
	Logger  *Logger
	Tracer  *Tracer
	Metrics *Metrics
	Events  *EventPublisher
	Config  *Config
}

// NewTelemetry creates every telemetry component from configuration.
func NewTelemetry(cfg *Config) (*Telemetry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	tracer, err := NewTracer(cfg.Tracing, cfg.ServiceName, cfg.ServiceVersion, cfg.Environment)
	if err != nil {
		return nil, err
	}

	metrics, err := NewMetrics(cfg.Metrics)
	if err != nil {
		return nil, err
	}

	events, err := NewEventPublisher(cfg.Events)
	if err != nil {
		return nil, err
	}

	return &Telemetry{
		Logger:  logger,
		Tracer:  tracer,
		Metrics: metrics,
		Events:  events,
		Config:  cfg,
	}, nil
}

// KitchenOptions wires a kitchen session to this telemetry: component
// logger, metrics recorder and an event-publishing narrator. extra
// narrators receive the same narration first.
func (t *Telemetry) KitchenOptions(sessionID string, extra ...kitchen.Narrator) []kitchen.Option {
	narrators := append(append([]kitchen.Narrator{}, extra...), t.Events.Narrator(sessionID))
	return []kitchen.Option{
		kitchen.WithSessionID(sessionID),
		kitchen.WithLogger(t.Logger.NewComponentLogger("kitchen").Zerolog()),
		kitchen.WithRecorder(t.Metrics),
		kitchen.WithNarrator(kitchen.MultiNarrator(narrators...)),
	}
}

// Shutdown drains events, flushes spans and closes the log file.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.Events.Shutdown(ctx),
		t.Tracer.Shutdown(ctx),
		t.Logger.Close(),
	)
}
