package telemetry

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// Metrics provides Prometheus metrics for kitchen sessions. A disabled
// Metrics value accepts every call and records nothing.
type Metrics struct {
	config MetricsConfig

	orders           *prometheus.CounterVec
	stationAttempts  *prometheus.CounterVec
	withdrawals      *prometheus.CounterVec
	unitsWithdrawn   *prometheus.CounterVec
	drains           *prometheus.CounterVec
	drainDuration    *prometheus.HistogramVec
	queueDepth       prometheus.Gauge
	sessionsRecorded *prometheus.CounterVec

	registry *prometheus.Registry
}

var _ kitchen.Recorder = (*Metrics)(nil)

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics(cfg MetricsConfig) (*Metrics, error) {
	if !cfg.Enabled {
		return &Metrics{config: cfg}, nil
	}

	ns := cfg.Namespace
	m := &Metrics{
		config:   cfg,
		registry: prometheus.NewRegistry(),

		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "orders_total",
			Help:      "Orders leaving the fulfillment loop, by status",
		}, []string{"status"}),
		stationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "station_attempts_total",
			Help:      "Station attempts by station and outcome",
		}, []string{"station", "outcome"}),
		withdrawals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "backup_withdrawals_total",
			Help:      "Backup withdrawal attempts by ingredient and result",
		}, []string{"ingredient", "result"}),
		unitsWithdrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "backup_units_withdrawn_total",
			Help:      "Units moved from the backup pool to stations",
		}, []string{"ingredient"}),
		drains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "drains_total",
			Help:      "Completed fulfillment loops by outcome",
		}, []string{"outcome"}),
		drainDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "drain_duration_seconds",
			Help:      "Duration of the fulfillment loop in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"outcome"}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "queue_depth",
			Help:      "Orders currently queued",
		}),
		sessionsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "sessions_recorded_total",
			Help:      "Sessions persisted to the history store by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.orders,
		m.stationAttempts,
		m.withdrawals,
		m.unitsWithdrawn,
		m.drains,
		m.drainDuration,
		m.queueDepth,
		m.sessionsRecorded,
	)

	return m, nil
}

// Registry returns the Prometheus registry, nil when metrics are disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordOrder implements kitchen.Recorder.
func (m *Metrics) RecordOrder(status kitchen.OrderStatus) {
	if m.orders == nil {
		return
	}
	m.orders.WithLabelValues(string(status)).Inc()
}

// RecordStationAttempt implements kitchen.Recorder.
func (m *Metrics) RecordStationAttempt(station string, outcome kitchen.NarrationKind) {
	if m.stationAttempts == nil {
		return
	}
	m.stationAttempts.WithLabelValues(station, string(outcome)).Inc()
}

// RecordWithdrawal implements kitchen.Recorder.
func (m *Metrics) RecordWithdrawal(ingredient string, qty int, err error) {
	if m.withdrawals == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = string(kitchen.KindOf(err))
		if result == "" {
			result = "error"
		}
	}
	m.withdrawals.WithLabelValues(ingredient, result).Inc()
	if err == nil {
		m.unitsWithdrawn.WithLabelValues(ingredient).Add(float64(qty))
	}
}

// RecordDrain implements kitchen.Recorder.
func (m *Metrics) RecordDrain(outcome kitchen.DrainOutcome, duration time.Duration) {
	if m.drains == nil {
		return
	}
	m.drains.WithLabelValues(string(outcome)).Inc()
	m.drainDuration.WithLabelValues(string(outcome)).Observe(duration.Seconds())
}

// SetQueueDepth implements kitchen.Recorder.
func (m *Metrics) SetQueueDepth(depth int) {
	if m.queueDepth == nil {
		return
	}
	m.queueDepth.Set(float64(depth))
}

// RecordSessionPersisted counts a history store write.
func (m *Metrics) RecordSessionPersisted(err error) {
	if m.sessionsRecorded == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sessionsRecorded.WithLabelValues(result).Inc()
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// StartMetricsServer serves the metrics endpoint until ctx is cancelled.
// Listener errors are sent to errCh, which may be nil.
func (m *Metrics) StartMetricsServer(ctx context.Context, errCh chan<- error) *http.Server {
	if !m.config.Enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(m.config.Path, m.Handler())

	server := &http.Server{
		Addr:              m.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && errCh != nil {
			errCh <- err
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	return server
}
