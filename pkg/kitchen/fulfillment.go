package kitchen

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DrainResult summarizes one run of the fulfillment loop.
type DrainResult struct {
	SessionID string        `json:"session_id"`
	Outcome   DrainOutcome  `json:"outcome"`
	Fulfilled []*Order      `json:"fulfilled"`
	Remaining []*Order      `json:"remaining"`
	Attempts  int           `json:"attempts"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// ProcessAll drains the order queue. Each head order is routed through the
// stations in scan order, topping up shortfalls from the backup pool, and
// requeued at the tail when no station can prepare it. The loop stops when
// the queue is empty or when the first order deferred since the last
// success comes back to the head, so it always terminates. Orders that
// cannot be fulfilled stay queued in their original relative order.
//
// ProcessAll does not return an error; ctx carries tracing only.
func (k *Kitchen) ProcessAll(ctx context.Context) *DrainResult {
	k.mu.Lock()
	defer k.mu.Unlock()

	ctx, span := k.tracer.Start(ctx, "kitchen.process_all",
		trace.WithAttributes(
			attribute.String("session.id", k.id),
			attribute.Int("queue.depth", k.queue.Len()),
			attribute.Int("stations", k.registry.Len()),
		))
	defer span.End()

	result := &DrainResult{
		SessionID: k.id,
		Outcome:   DrainOutcomeDrained,
		StartedAt: time.Now(),
	}

	var sentinel *Order
	for {
		head, ok := k.queue.Peek()
		if !ok {
			break
		}
		if head == sentinel {
			result.Outcome = DrainOutcomeHalted
			break
		}
		order, _ := k.queue.Pop()
		result.Attempts++

		if k.fulfill(ctx, order) {
			result.Fulfilled = append(result.Fulfilled, order)
			sentinel = nil
		} else {
			if sentinel == nil {
				sentinel = order
			}
			k.queue.Push(order)
		}
		k.recorder.SetQueueDepth(k.queue.Len())
	}

	result.Remaining = k.queue.Orders()
	result.Duration = time.Since(result.StartedAt)

	k.narrator.Narrate(Narration{
		Kind:      NarrationSummary,
		Outcome:   result.Outcome,
		Remaining: len(result.Remaining),
	})
	k.recorder.RecordDrain(result.Outcome, result.Duration)

	span.SetAttributes(
		attribute.String("drain.outcome", string(result.Outcome)),
		attribute.Int("orders.fulfilled", len(result.Fulfilled)),
		attribute.Int("orders.remaining", len(result.Remaining)),
	)
	if result.Outcome == DrainOutcomeHalted {
		span.SetStatus(codes.Error, "orders remain unfulfillable")
	}

	k.logger.Info().
		Str("outcome", string(result.Outcome)).
		Int("fulfilled", len(result.Fulfilled)).
		Int("remaining", len(result.Remaining)).
		Int("attempts", result.Attempts).
		Dur("duration", result.Duration).
		Msg("Fulfillment loop finished")

	return result
}

// fulfill routes one popped order through the stations.
func (k *Kitchen) fulfill(ctx context.Context, order *Order) bool {
	name := order.ItemName()
	_, span := k.tracer.Start(ctx, "kitchen.order",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.String("order.item", name),
		))
	defer span.End()

	order.Attempts++
	k.narrate(NarrationOrderStarted, order, "")

	for _, ws := range k.registry.stations {
		k.narrate(NarrationAttempting, order, ws.name)

		item, ok := ws.Item(name)
		if !ok {
			k.narrate(NarrationNotAvailable, order, ws.name)
			continue
		}

		if !ws.CanFulfill(name) {
			k.narrate(NarrationReplenishing, order, ws.name)
			if err := k.remediate(ws, item); err != nil {
				k.logger.Debug().Err(err).Str("station", ws.name).Str("item", name).
					Msg("Replenishment from backup failed")
				k.narrate(NarrationReplenishFailed, order, ws.name)
				continue
			}
			k.narrate(NarrationReplenished, order, ws.name)
		}

		if err := ws.Prepare(name); err != nil {
			k.logger.Debug().Err(err).Str("station", ws.name).Str("item", name).
				Msg("Station could not prepare item")
			k.recorder.RecordStationAttempt(ws.name, NarrationNotPrepared)
			continue
		}

		order.Status = OrderStatusFulfilled
		order.FulfilledBy = ws.name
		k.narrate(NarrationPrepared, order, ws.name)
		k.recorder.RecordOrder(OrderStatusFulfilled)
		span.SetAttributes(attribute.String("order.station", ws.name))
		return true
	}

	order.Status = OrderStatusDeferred
	k.narrate(NarrationNotPrepared, order, "")
	k.recorder.RecordOrder(OrderStatusDeferred)
	span.SetStatus(codes.Error, "no station prepared the order")
	return false
}

// remediate tops the station up to the item's requirements from the backup
// pool. Ingredients already transferred stay at the station if a later
// withdrawal fails.
func (k *Kitchen) remediate(ws *Workstation, item MenuItem) error {
	for _, req := range aggregate(item.Requirements()) {
		deficit := req.Quantity - ws.stock.Quantity(req.Name)
		if deficit <= 0 {
			continue
		}
		if err := k.transfer(ws, req.Name, deficit); err != nil {
			return err
		}
	}
	return nil
}

// PrepareNext makes a single attempt at the head order without drawing on
// the backup pool. On success the order is removed from the queue and
// returned; otherwise it stays at the head.
func (k *Kitchen) PrepareNext(ctx context.Context) (*Order, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	order, ok := k.queue.Peek()
	if !ok {
		return nil, newError(KindNotFound, "order queue is empty")
	}
	name := order.ItemName()
	_, span := k.tracer.Start(ctx, "kitchen.prepare_next",
		trace.WithAttributes(attribute.String("order.id", order.ID), attribute.String("order.item", name)))
	defer span.End()

	order.Attempts++
	k.narrate(NarrationOrderStarted, order, "")

	assigned := false
	for _, ws := range k.registry.stations {
		k.narrate(NarrationAttempting, order, ws.name)
		if _, ok := ws.Item(name); !ok {
			k.narrate(NarrationNotAvailable, order, ws.name)
			continue
		}
		assigned = true
		if !ws.CanFulfill(name) {
			continue
		}
		if err := ws.Prepare(name); err != nil {
			continue
		}
		k.queue.Pop()
		order.Status = OrderStatusFulfilled
		order.FulfilledBy = ws.name
		k.narrate(NarrationPrepared, order, ws.name)
		k.recorder.RecordOrder(OrderStatusFulfilled)
		k.recorder.SetQueueDepth(k.queue.Len())
		return order, nil
	}

	k.narrate(NarrationNotPrepared, order, "")
	span.SetStatus(codes.Error, "no station prepared the order")
	if !assigned {
		return nil, newError(KindNotFound, "no station serves item").WithItem(name)
	}
	return nil, newError(KindInsufficientQuantity, "no station has the ingredients").WithItem(name)
}

func (k *Kitchen) narrate(kind NarrationKind, order *Order, station string) {
	k.narrator.Narrate(Narration{
		Kind:    kind,
		OrderID: order.ID,
		Item:    order.ItemName(),
		Station: station,
	})
	switch kind {
	case NarrationNotAvailable, NarrationReplenishFailed, NarrationPrepared:
		k.recorder.RecordStationAttempt(station, kind)
	}
}
