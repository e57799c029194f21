package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// Event is a notable occurrence during a kitchen session.
type Event struct {
	ID        string                 `json:"id"`
	Timestamp time.Time              `json:"timestamp"`
	Type      string                 `json:"type"`
	SessionID string                 `json:"session_id,omitempty"`
	OrderID   string                 `json:"order_id,omitempty"`
	Station   string                 `json:"station,omitempty"`
	Message   string                 `json:"message"`
	Level     string                 `json:"level"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Event types.
const (
	EventTypeSessionStarted     = "session.started"
	EventTypeSessionCompleted   = "session.completed"
	EventTypeOrderFulfilled     = "order.fulfilled"
	EventTypeOrderDeferred      = "order.deferred"
	EventTypeStationReplenished = "station.replenished"
	EventTypeReplenishFailed    = "station.replenish_failed"
)

// Event levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// EventSubscriber handles events.
type EventSubscriber func(event Event)

// EventFilter determines if an event should be delivered.
type EventFilter func(event Event) bool

// EventPublisher fans events out to subscribers. Delivery happens in
// publish order, either inline or on one background goroutine.
type EventPublisher struct {
	config      EventsConfig
	buffer      chan Event
	subscribers []subscriberEntry
	mu          sync.RWMutex
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

type subscriberEntry struct {
	subscriber EventSubscriber
	filter     EventFilter
}

// NewEventPublisher creates an event publisher.
func NewEventPublisher(cfg EventsConfig) (*EventPublisher, error) {
	ep := &EventPublisher{config: cfg}
	if cfg.Enabled && cfg.EnableAsync {
		if cfg.BufferSize <= 0 {
			return nil, fmt.Errorf("event buffer size must be positive, got: %d", cfg.BufferSize)
		}
		ep.buffer = make(chan Event, cfg.BufferSize)
		ep.wg.Add(1)
		go ep.processEvents()
	}
	return ep, nil
}

// Publish publishes an event to all subscribers.
func (ep *EventPublisher) Publish(event Event) error {
	if !ep.config.Enabled {
		return nil
	}
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if event.Level == "" {
		event.Level = EventLevelInfo
	}

	if ep.buffer != nil {
		select {
		case ep.buffer <- event:
			return nil
		default:
			return fmt.Errorf("event buffer full, event %s dropped", event.Type)
		}
	}

	ep.deliverEvent(event)
	return nil
}

// PublishSessionStarted publishes a session started event.
func (ep *EventPublisher) PublishSessionStarted(sessionID, source string, orders int) error {
	return ep.Publish(Event{
		Type:      EventTypeSessionStarted,
		SessionID: sessionID,
		Message:   fmt.Sprintf("Session %s started from %s with %d orders", sessionID, source, orders),
		Data:      map[string]interface{}{"source": source, "orders": orders},
	})
}

// PublishSessionCompleted publishes a session completed event.
func (ep *EventPublisher) PublishSessionCompleted(result *kitchen.DrainResult) error {
	level := EventLevelInfo
	if result.Outcome == kitchen.DrainOutcomeHalted {
		level = EventLevelWarning
	}
	return ep.Publish(Event{
		Type:      EventTypeSessionCompleted,
		SessionID: result.SessionID,
		Message: fmt.Sprintf("Session %s %s: %d fulfilled, %d remaining",
			result.SessionID, result.Outcome, len(result.Fulfilled), len(result.Remaining)),
		Level: level,
		Data: map[string]interface{}{
			"outcome":   string(result.Outcome),
			"fulfilled": len(result.Fulfilled),
			"remaining": len(result.Remaining),
			"duration":  result.Duration.Seconds(),
		},
	})
}

// Narrator returns a kitchen narrator publishing order and station events
// for a session.
func (ep *EventPublisher) Narrator(sessionID string) kitchen.Narrator {
	return kitchen.NarratorFunc(func(n kitchen.Narration) {
		event := Event{
			SessionID: sessionID,
			OrderID:   n.OrderID,
			Station:   n.Station,
			Message:   n.String(),
			Data:      map[string]interface{}{"item": n.Item},
		}
		switch n.Kind {
		case kitchen.NarrationPrepared:
			event.Type = EventTypeOrderFulfilled
		case kitchen.NarrationNotPrepared:
			event.Type = EventTypeOrderDeferred
			event.Level = EventLevelWarning
		case kitchen.NarrationReplenished:
			event.Type = EventTypeStationReplenished
		case kitchen.NarrationReplenishFailed:
			event.Type = EventTypeReplenishFailed
			event.Level = EventLevelWarning
		default:
			return
		}
		_ = ep.Publish(event)
	})
}

// Subscribe adds an event subscriber. A nil filter accepts every event.
func (ep *EventPublisher) Subscribe(subscriber EventSubscriber, filter EventFilter) {
	ep.mu.Lock()
	defer ep.mu.Unlock()
	ep.subscribers = append(ep.subscribers, subscriberEntry{subscriber: subscriber, filter: filter})
}

func (ep *EventPublisher) processEvents() {
	defer ep.wg.Done()
	for event := range ep.buffer {
		ep.deliverEvent(event)
	}
}

func (ep *EventPublisher) deliverEvent(event Event) {
	ep.mu.RLock()
	defer ep.mu.RUnlock()
	for _, entry := range ep.subscribers {
		if entry.filter != nil && !entry.filter(event) {
			continue
		}
		entry.subscriber(event)
	}
}

// Shutdown stops accepting events and waits for buffered ones to be delivered.
func (ep *EventPublisher) Shutdown(ctx context.Context) error {
	if ep.buffer == nil {
		return nil
	}
	ep.closeOnce.Do(func() { close(ep.buffer) })

	done := make(chan struct{})
	go func() {
		ep.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("event publisher shutdown timeout")
	}
}

// FilterByType creates a filter that only allows events of specific types.
func FilterByType(types ...string) EventFilter {
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	return func(event Event) bool {
		return typeSet[event.Type]
	}
}

// FilterByLevel creates a filter that only allows events of a level or higher.
func FilterByLevel(minLevel string) EventFilter {
	levels := map[string]int{
		EventLevelInfo:    0,
		EventLevelWarning: 1,
		EventLevelError:   2,
	}
	min := levels[minLevel]
	return func(event Event) bool {
		return levels[event.Level] >= min
	}
}
