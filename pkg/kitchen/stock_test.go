package kitchen

import (
	"errors"
	"testing"
)

func TestStock_AddMergesByName(t *testing.T) {
	var s Stock
	for _, in := range []Ingredient{ing("salt", 3), ing("pepper", 1), ing("salt", 5)} {
		if err := s.Add(in); err != nil {
			t.Fatalf("Add(%v) failed: %v", in, err)
		}
	}
	assertStock(t, s.Entries(), ing("salt", 8), ing("pepper", 1))
}

func TestStock_AddRejectsNonPositive(t *testing.T) {
	var s Stock
	for _, qty := range []int{0, -2} {
		err := s.Add(ing("salt", qty))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Expected invalid argument for quantity %d, got %v", qty, err)
		}
	}
	if s.Len() != 0 {
		t.Errorf("Expected empty stock, got %v", s.Entries())
	}
}

func TestStock_Take(t *testing.T) {
	tests := []struct {
		name    string
		take    string
		qty     int
		want    ErrorKind
		wantQty int
	}{
		{"partial", "salt", 2, "", 1},
		{"exact removes entry", "salt", 3, "", 0},
		{"insufficient", "salt", 4, KindInsufficientQuantity, 3},
		{"missing", "sugar", 1, KindNotFound, 3},
		{"zero", "salt", 0, KindInvalidArgument, 3},
		{"negative", "salt", -1, KindInvalidArgument, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewStock(ing("salt", 3))
			if err != nil {
				t.Fatalf("NewStock failed: %v", err)
			}
			err = s.Take(tt.take, tt.qty)
			if got := KindOf(err); got != tt.want {
				t.Errorf("Expected error kind %q, got %q (%v)", tt.want, got, err)
			}
			if got := s.Quantity("salt"); got != tt.wantQty {
				t.Errorf("Expected salt quantity %d, got %d", tt.wantQty, got)
			}
			if tt.wantQty == 0 && s.Has("salt") {
				t.Error("Expected entry to be removed at zero")
			}
		})
	}
}

func TestStock_ReplaceCompactsAndMerges(t *testing.T) {
	s, err := NewStock(ing("flour", 1))
	if err != nil {
		t.Fatalf("NewStock failed: %v", err)
	}
	if err := s.Replace([]Ingredient{ing("tomato", 0), ing("basil", 2), ing("basil", 1)}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	assertStock(t, s.Entries(), ing("basil", 3))

	err = s.Replace([]Ingredient{ing("egg", 2), ing("milk", -1)})
	if !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
	assertStock(t, s.Entries(), ing("basil", 3))
}

func TestStock_EntriesIsCopy(t *testing.T) {
	s, _ := NewStock(ing("salt", 1))
	entries := s.Entries()
	entries[0].Quantity = 99
	if s.Quantity("salt") != 1 {
		t.Error("Expected Entries to return a copy")
	}
}

func TestBackupInventory_WithdrawDepositRoundTrip(t *testing.T) {
	b, err := NewBackupInventory(ing("patty", 5), ing("bun", 2))
	if err != nil {
		t.Fatalf("NewBackupInventory failed: %v", err)
	}
	before := b.Stock()

	if err := b.Withdraw("patty", 3); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if err := b.Deposit(ing("patty", 3)); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	assertStock(t, b.Stock(), before...)

	if err := b.Withdraw("bun", 2); err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if b.Quantity("bun") != 0 || len(b.Stock()) != 1 {
		t.Errorf("Expected bun entry removed, got %v", b.Stock())
	}
}

func TestBackupInventory_WithdrawErrors(t *testing.T) {
	b, _ := NewBackupInventory(ing("patty", 1))

	if err := b.Withdraw("patty", 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
	if err := b.Withdraw("cheese", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected not found, got %v", err)
	}
	if err := b.Withdraw("patty", 2); !errors.Is(err, ErrInsufficientQuantity) {
		t.Errorf("Expected insufficient quantity, got %v", err)
	}
	if b.Quantity("patty") != 1 {
		t.Errorf("Expected pool unchanged, got %v", b.Stock())
	}

	b.Clear()
	if len(b.Stock()) != 0 {
		t.Errorf("Expected empty pool after Clear, got %v", b.Stock())
	}
}
