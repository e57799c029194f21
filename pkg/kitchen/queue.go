package kitchen

import (
	"time"

	"github.com/google/uuid"
)

// Order is a queued request for one menu item.
type Order struct {
	// ID uniquely identifies the order.
	ID string `json:"id"`

	// Item is the requested menu item, shared with station assignments.
	Item MenuItem `json:"-"`

	// Status is the order's current status.
	Status OrderStatus `json:"status"`

	// Attempts counts how many times the fulfillment loop picked up the order.
	Attempts int `json:"attempts"`

	// FulfilledBy names the station that prepared the order.
	FulfilledBy string `json:"fulfilled_by,omitempty"`

	// EnqueuedAt is when the order first entered the queue.
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// NewOrder creates a pending order for an item.
func NewOrder(item MenuItem) *Order {
	return &Order{
		ID:         uuid.New().String(),
		Item:       item,
		Status:     OrderStatusPending,
		EnqueuedAt: time.Now(),
	}
}

// ItemName returns the name of the ordered item.
func (o *Order) ItemName() string {
	if o.Item == nil {
		return ""
	}
	return o.Item.Name()
}

// OrderQueue is a FIFO of orders.
type OrderQueue struct {
	orders []*Order
}

// NewOrderQueue creates an empty queue.
func NewOrderQueue() *OrderQueue {
	return &OrderQueue{}
}

// Push appends an order at the tail.
func (q *OrderQueue) Push(o *Order) {
	q.orders = append(q.orders, o)
}

// Pop removes and returns the head order.
func (q *OrderQueue) Pop() (*Order, bool) {
	if len(q.orders) == 0 {
		return nil, false
	}
	o := q.orders[0]
	q.orders[0] = nil
	q.orders = q.orders[1:]
	return o, true
}

// Peek returns the head order without removing it.
func (q *OrderQueue) Peek() (*Order, bool) {
	if len(q.orders) == 0 {
		return nil, false
	}
	return q.orders[0], true
}

// Len returns the number of queued orders.
func (q *OrderQueue) Len() int {
	return len(q.orders)
}

// Orders returns the queued orders, head first.
func (q *OrderQueue) Orders() []*Order {
	out := make([]*Order, len(q.orders))
	copy(out, q.orders)
	return out
}

// Clear empties the queue and returns what was in it.
func (q *OrderQueue) Clear() []*Order {
	out := q.orders
	q.orders = nil
	return out
}
