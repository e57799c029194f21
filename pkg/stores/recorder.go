package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// SessionRecorder is a kitchen.Narrator that buffers narration for one
// session until Persist writes it to a store.
type SessionRecorder struct {
	sessionID string

	mu         sync.Mutex
	narrations []NarrationRecord
}

var _ kitchen.Narrator = (*SessionRecorder)(nil)

// NewSessionRecorder creates a recorder for a session.
func NewSessionRecorder(sessionID string) *SessionRecorder {
	return &SessionRecorder{sessionID: sessionID}
}

// Narrate implements kitchen.Narrator.
func (r *SessionRecorder) Narrate(n kitchen.Narration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.narrations = append(r.narrations, NarrationRecord{
		SessionID: r.sessionID,
		OrderID:   n.OrderID,
		Kind:      n.Kind,
		Station:   n.Station,
		Item:      n.Item,
		Message:   n.String(),
		Timestamp: time.Now(),
	})
}

// Len returns the number of buffered narration lines.
func (r *SessionRecorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.narrations)
}

// Persist completes the session and stores its orders, narration and the
// closing stock of k. The narration buffer is cleared on success.
func (r *SessionRecorder) Persist(ctx context.Context, store Store, k *kitchen.Kitchen, result *kitchen.DrainResult) error {
	if err := store.CompleteSession(ctx, r.sessionID, result.Outcome,
		len(result.Fulfilled), len(result.Remaining), nil); err != nil {
		return err
	}

	if err := store.SaveOrders(ctx, r.sessionID, OrderRecords(r.sessionID, result)); err != nil {
		return err
	}

	r.mu.Lock()
	pending := r.narrations
	r.mu.Unlock()
	if err := store.AppendNarrations(ctx, r.sessionID, pending); err != nil {
		return err
	}
	r.mu.Lock()
	r.narrations = r.narrations[len(pending):]
	r.mu.Unlock()

	if err := store.SaveStockSnapshot(ctx, r.sessionID, StockRecords(k)); err != nil {
		return fmt.Errorf("failed to snapshot stock: %w", err)
	}
	return nil
}

// OrderRecords flattens a drain result: fulfilled orders in the order they
// were prepared, then remaining orders in queue order.
func OrderRecords(sessionID string, result *kitchen.DrainResult) []OrderRecord {
	out := make([]OrderRecord, 0, len(result.Fulfilled)+len(result.Remaining))
	add := func(o *kitchen.Order) {
		out = append(out, OrderRecord{
			SessionID: sessionID,
			OrderID:   o.ID,
			Position:  len(out),
			Item:      o.ItemName(),
			Status:    o.Status,
			Station:   o.FulfilledBy,
			Attempts:  o.Attempts,
		})
	}
	for _, o := range result.Fulfilled {
		add(o)
	}
	for _, o := range result.Remaining {
		add(o)
	}
	return out
}

// StockRecords snapshots the backup pool followed by every station in scan order.
func StockRecords(k *kitchen.Kitchen) []StockRecord {
	var out []StockRecord
	for _, ing := range k.Backup().Stock() {
		out = append(out, StockRecord{Owner: BackupOwner, Ingredient: ing.Name, Quantity: ing.Quantity})
	}
	for _, ws := range k.Registry().Stations() {
		for _, ing := range ws.Stock() {
			out = append(out, StockRecord{Owner: ws.Name(), Ingredient: ing.Name, Quantity: ing.Quantity})
		}
	}
	return out
}
