package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bistroworks/bistro/pkg/config"
	"github.com/bistroworks/bistro/pkg/kitchen"
	"github.com/bistroworks/bistro/pkg/stores"
	"github.com/bistroworks/bistro/pkg/telemetry"
)

// runner executes kitchen definitions with shared telemetry and history.
type runner struct {
	opts   *rootOptions
	tel    *telemetry.Telemetry
	store  stores.Store
	loader *config.Loader
	out    io.Writer
}

// newRunner creates telemetry and, unless disabled, opens the history store.
func newRunner(ctx context.Context, opts *rootOptions, out io.Writer, store bool) (*runner, error) {
	cfg, err := opts.settings.Telemetry(opts.version)
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.NewTelemetry(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	events := tel.Logger.NewComponentLogger("events")
	tel.Events.Subscribe(func(e telemetry.Event) {
		events.WithSessionID(e.SessionID).
			WithOrderID(e.OrderID).
			WithStation(e.Station).
			WithField("type", e.Type).
			Debug(e.Message)
	}, nil)

	r := &runner{
		opts:   opts,
		tel:    tel,
		loader: config.NewLoader(),
		out:    out,
	}

	if store && opts.settings.Store {
		s, err := openStore(ctx, opts.settings.DBPath)
		if err != nil {
			_ = tel.Shutdown(ctx)
			return nil, err
		}
		r.store = s
	}

	return r, nil
}

// openStore opens and migrates the history database.
func openStore(ctx context.Context, path string) (*stores.SQLiteStore, error) {
	store, err := stores.NewSQLiteStore(stores.Config{Path: path})
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to open history %s: %w", path, err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// Close flushes telemetry and closes the store.
func (r *runner) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := r.tel.Shutdown(ctx)
	if r.store != nil {
		if cerr := r.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// runSummary is the JSON rendering of one run.
type runSummary struct {
	SessionID string                   `json:"session_id"`
	Kitchen   string                   `json:"kitchen"`
	Source    string                   `json:"source"`
	Outcome   kitchen.DrainOutcome     `json:"outcome"`
	Attempts  int                      `json:"attempts"`
	Duration  string                   `json:"duration"`
	Orders    []stores.OrderRecord     `json:"orders"`
	Stock     []stores.StockRecord     `json:"stock"`
	Warnings  []config.ValidationError `json:"warnings,omitempty"`
	Recorded  bool                     `json:"recorded"`
}

// run loads a definition, drains its queue and records the session.
func (r *runner) run(ctx context.Context, path string) (*kitchen.DrainResult, error) {
	loaded, err := r.loader.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := loaded.Err(); err != nil {
		return nil, err
	}
	for _, w := range loaded.Warnings() {
		log.Warn().Str("path", w.Path).Msg(w.Message)
	}
	def := loaded.Definition

	sessionID := uuid.NewString()
	ctx, span := r.tel.Tracer.StartSessionSpan(ctx, sessionID, path)
	defer span.End()

	var narrators []kitchen.Narrator
	if !r.opts.jsonOutput {
		narrators = append(narrators, kitchen.NewWriterNarrator(r.out))
	}
	var recorder *stores.SessionRecorder
	if r.store != nil {
		recorder = stores.NewSessionRecorder(sessionID)
		narrators = append(narrators, recorder)
	}

	k, err := config.Build(def, r.tel.KitchenOptions(sessionID, narrators...)...)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, fmt.Errorf("failed to build kitchen: %w", err)
	}

	if r.store != nil {
		if err := r.store.CreateSession(ctx, &stores.Session{
			ID:      sessionID,
			Kitchen: def.Name,
			Source:  path,
		}); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
	}

	logger := r.tel.Logger.WithSessionID(sessionID).WithField("trace_id", telemetry.TraceID(ctx))
	logger.Infof("Starting %s with %d orders", def.Name, len(k.PendingOrders()))
	_ = r.tel.Events.PublishSessionStarted(sessionID, path, len(k.PendingOrders()))

	result := k.ProcessAll(ctx)

	_ = r.tel.Events.PublishSessionCompleted(result)

	recorded := false
	if recorder != nil {
		err := recorder.Persist(ctx, r.store, k, result)
		r.tel.Metrics.RecordSessionPersisted(err)
		if err != nil {
			telemetry.RecordError(span, err)
			logger.WithError(err).Error("Failed to record session")
			return result, fmt.Errorf("failed to record session %s: %w", sessionID, err)
		}
		recorded = true
	}

	if r.opts.jsonOutput {
		summary := runSummary{
			SessionID: sessionID,
			Kitchen:   def.Name,
			Source:    path,
			Outcome:   result.Outcome,
			Attempts:  result.Attempts,
			Duration:  result.Duration.String(),
			Orders:    stores.OrderRecords(sessionID, result),
			Stock:     stores.StockRecords(k),
			Warnings:  loaded.Warnings(),
			Recorded:  recorded,
		}
		if err := writeJSON(r.out, summary); err != nil {
			return result, err
		}
	} else if recorded {
		fmt.Fprintf(r.out, "Session %s recorded.\n", sessionID)
	}

	return result, nil
}
