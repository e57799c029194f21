package kitchen

import (
	"errors"
	"testing"
)

func TestWorkstation_AssignRejectsDuplicate(t *testing.T) {
	ws := NewWorkstation("Grill")
	if err := ws.Assign(newTestItem("Burger")); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	err := ws.Assign(newTestItem("Burger", req("bun", 2)))
	if !errors.Is(err, ErrDuplicateAssignment) {
		t.Errorf("Expected duplicate assignment, got %v", err)
	}
	if len(ws.Items()) != 1 {
		t.Errorf("Expected 1 item, got %d", len(ws.Items()))
	}
	if err := ws.Assign(nil); !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument for nil item, got %v", err)
	}
}

func TestWorkstation_CanFulfillIsPresenceOnly(t *testing.T) {
	burger := newTestItem("Burger", req("bun", 2), req("patty", 1))
	ws := newStation(t, "Grill", []MenuItem{burger}, ing("bun", 1), ing("patty", 1))

	if !ws.CanFulfill("Burger") {
		t.Error("Expected CanFulfill to ignore quantities")
	}
	if ws.CanCommit("Burger") {
		t.Error("Expected CanCommit to report the bun shortfall")
	}
	if ws.CanFulfill("Fries") {
		t.Error("Expected CanFulfill false for an unassigned item")
	}

	ws2 := newStation(t, "Grill2", []MenuItem{burger}, ing("bun", 5))
	if ws2.CanFulfill("Burger") {
		t.Error("Expected CanFulfill false with patty absent")
	}
}

func TestWorkstation_PrepareAllOrNothing(t *testing.T) {
	burger := newTestItem("Burger", req("bun", 1), req("patty", 2))
	ws := newStation(t, "Grill", []MenuItem{burger}, ing("bun", 3), ing("patty", 1))

	err := ws.Prepare("Burger")
	if !errors.Is(err, ErrInsufficientQuantity) {
		t.Fatalf("Expected insufficient quantity, got %v", err)
	}
	assertStock(t, ws.Stock(), ing("bun", 3), ing("patty", 1))

	if err := ws.Restock(ing("patty", 1)); err != nil {
		t.Fatalf("Restock failed: %v", err)
	}
	if err := ws.Prepare("Burger"); err != nil {
		t.Fatalf("Prepare failed: %v", err)
	}
	assertStock(t, ws.Stock(), ing("bun", 2))
}

func TestWorkstation_PrepareSumsRepeatedRequirements(t *testing.T) {
	item := newTestItem("Stew", req("beans", 2), req("beans", 2))
	ws := newStation(t, "Pot", []MenuItem{item}, ing("beans", 3))

	if err := ws.Prepare("Stew"); !IsInsufficientQuantity(err) {
		t.Errorf("Expected insufficient quantity, got %v", err)
	}
	if ws.Quantity("beans") != 3 {
		t.Errorf("Expected beans untouched, got %d", ws.Quantity("beans"))
	}
}

func TestWorkstation_PrepareErrors(t *testing.T) {
	ws := newStation(t, "Grill", []MenuItem{newTestItem("Burger", req("bun", 1))})

	if err := ws.Prepare("Fries"); !IsNotFound(err) {
		t.Errorf("Expected not found for unassigned item, got %v", err)
	}
	if err := ws.Prepare("Burger"); !IsNotFound(err) {
		t.Errorf("Expected not found for missing ingredient, got %v", err)
	}

	var kerr *KitchenError
	err := ws.Prepare("Burger")
	if !errors.As(err, &kerr) {
		t.Fatalf("Expected *KitchenError, got %T", err)
	}
	if kerr.Station != "Grill" || kerr.Item != "Burger" || kerr.Ingredient != "bun" {
		t.Errorf("Expected station/item/ingredient context, got %+v", kerr)
	}
}

func TestWorkstation_RestockRejectsNonPositive(t *testing.T) {
	ws := NewWorkstation("Grill")
	err := ws.Restock(ing("bun", 0))
	if !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument, got %v", err)
	}
	if len(ws.Stock()) != 0 {
		t.Errorf("Expected stock untouched, got %v", ws.Stock())
	}
}
