package kitchen

import (
	"errors"
	"fmt"
	"testing"
)

func TestKitchenError_Is(t *testing.T) {
	err := newError(KindNotFound, "station not registered").WithStation("Grill")
	wrapped := fmt.Errorf("assign: %w", err)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("Expected wrapped error to match ErrNotFound")
	}
	if errors.Is(wrapped, ErrInvalidArgument) {
		t.Error("Expected wrapped error not to match ErrInvalidArgument")
	}
	if !IsNotFound(wrapped) {
		t.Error("Expected IsNotFound to see through wrapping")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("Expected empty kind for foreign errors")
	}
}

func TestKitchenError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *KitchenError
		want string
	}{
		{
			name: "message only",
			err:  newError(KindInvalidArgument, "station is nil"),
			want: "[invalid_argument] station is nil",
		},
		{
			name: "with context",
			err:  newError(KindInsufficientQuantity, "available 1, requested 2").WithStation("Grill").WithIngredient("bun"),
			want: "[insufficient_quantity] available 1, requested 2 (station=Grill, ingredient=bun)",
		},
		{
			name: "with cause",
			err:  newError(KindNotFound, "lookup failed").WithItem("Soup").WithCause(errors.New("boom")),
			want: "[not_found] lookup failed (item=Soup): boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOrderStatus_Validate(t *testing.T) {
	for _, s := range []OrderStatus{OrderStatusPending, OrderStatusFulfilled, OrderStatusDeferred} {
		if err := s.Validate(); err != nil {
			t.Errorf("Expected %s to be valid, got %v", s, err)
		}
	}
	if err := OrderStatus("burnt").Validate(); err == nil {
		t.Error("Expected invalid status to fail validation")
	}
	var s OrderStatus
	if err := s.UnmarshalJSON([]byte(`"burnt"`)); err == nil {
		t.Error("Expected UnmarshalJSON to reject unknown status")
	}
	if !OrderStatusFulfilled.IsTerminal() || OrderStatusDeferred.IsTerminal() {
		t.Error("Expected only fulfilled to be terminal")
	}
}
