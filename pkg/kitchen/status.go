package kitchen

import (
	"encoding/json"
	"fmt"
)

// OrderStatus represents where an order stands in the fulfillment loop.
type OrderStatus string

const (
	// OrderStatusPending indicates the order is queued and has not been attempted.
	OrderStatusPending OrderStatus = "pending"

	// OrderStatusFulfilled indicates a station prepared the order.
	OrderStatusFulfilled OrderStatus = "fulfilled"

	// OrderStatusDeferred indicates no station could prepare the order and it was requeued.
	OrderStatusDeferred OrderStatus = "deferred"
)

// IsTerminal returns true if the order will not be attempted again.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusFulfilled
}

// Validate checks if the order status is valid.
func (s OrderStatus) Validate() error {
	switch s {
	case OrderStatusPending, OrderStatusFulfilled, OrderStatusDeferred:
		return nil
	default:
		return fmt.Errorf("invalid order status: %s", s)
	}
}

// MarshalJSON implements json.Marshaler.
func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// UnmarshalJSON implements json.Unmarshaler with validation.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	status := OrderStatus(str)
	if err := status.Validate(); err != nil {
		return err
	}
	*s = status
	return nil
}

// DrainOutcome is the result of running the fulfillment loop to completion.
type DrainOutcome string

const (
	// DrainOutcomeDrained indicates the queue was emptied.
	DrainOutcomeDrained DrainOutcome = "drained"

	// DrainOutcomeHalted indicates a full pass made no progress and orders remain queued.
	DrainOutcomeHalted DrainOutcome = "halted"
)

// Validate checks if the drain outcome is valid.
func (o DrainOutcome) Validate() error {
	switch o {
	case DrainOutcomeDrained, DrainOutcomeHalted:
		return nil
	default:
		return fmt.Errorf("invalid drain outcome: %s", o)
	}
}

// MarshalJSON implements json.Marshaler.
func (o DrainOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(o))
}

// UnmarshalJSON implements json.Unmarshaler with validation.
func (o *DrainOutcome) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	outcome := DrainOutcome(str)
	if err := outcome.Validate(); err != nil {
		return err
	}
	*o = outcome
	return nil
}
