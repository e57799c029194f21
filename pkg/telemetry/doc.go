// Package telemetry provides logging, metrics, tracing and events for bistro.
//
// # Logging
//
// Logger wraps zerolog with console or JSON output and helpers for the
// fields bistro logs most (session, station, order):
//
//	logger, _ := telemetry.NewLogger(cfg.Logging)
//	logger.WithSessionID(id).Info("Session started")
//
// # Metrics
//
// Metrics implements kitchen.Recorder on its own Prometheus registry. Pass it
// to a kitchen with kitchen.WithRecorder and expose it with Handler or
// StartMetricsServer.
//
// # Tracing
//
// NewTracer installs an OpenTelemetry provider (stdout or OTLP over gRPC)
// globally. Kitchen sessions create their spans through the global provider,
// so no further wiring is needed.
//
// # Events
//
// EventPublisher delivers session and order events to subscribers in publish
// order. EventPublisher.Narrator turns kitchen narration into events.
//
// Telemetry bundles all four; Telemetry.KitchenOptions returns the kitchen
// options that connect a session to them.
package telemetry
