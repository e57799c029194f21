package kitchen

import "testing"

func TestOrderQueue_FIFO(t *testing.T) {
	q := NewOrderQueue()
	if _, ok := q.Peek(); ok {
		t.Fatal("Expected empty queue to have no head")
	}

	a, b := NewOrder(newTestItem("Soup")), NewOrder(newTestItem("Salad"))
	q.Push(a)
	q.Push(b)

	if head, _ := q.Peek(); head != a {
		t.Errorf("Expected head %s, got %s", a.ItemName(), head.ItemName())
	}
	if got, _ := q.Pop(); got != a {
		t.Errorf("Expected to pop %s first", a.ItemName())
	}
	if q.Len() != 1 {
		t.Errorf("Expected 1 queued order, got %d", q.Len())
	}

	cleared := q.Clear()
	if len(cleared) != 1 || cleared[0] != b {
		t.Errorf("Expected Clear to return the remaining order, got %v", cleared)
	}
	if _, ok := q.Pop(); ok {
		t.Error("Expected empty queue after Clear")
	}
}

func TestKitchen_StationOperations(t *testing.T) {
	burger := newTestItem("Burger", req("bun", 1), req("patty", 1))
	k := newKitchen(t, nil, NewWorkstation("Grill"), NewWorkstation("Fryer"))

	if err := k.AssignItem("Grill", burger); err != nil {
		t.Fatalf("AssignItem failed: %v", err)
	}
	if err := k.AssignItem("Oven", burger); !IsNotFound(err) {
		t.Errorf("Expected not found for unknown station, got %v", err)
	}
	if err := k.ReplenishStation("Grill", ing("bun", 1)); err != nil {
		t.Fatalf("ReplenishStation failed: %v", err)
	}

	if _, ok := k.CanFulfill("Burger"); ok {
		t.Error("Expected Burger not fulfillable without patty")
	}
	if err := k.ReplenishStation("Grill", ing("patty", 1)); err != nil {
		t.Fatalf("ReplenishStation failed: %v", err)
	}
	if name, ok := k.CanFulfill("Burger"); !ok || name != "Grill" {
		t.Errorf("Expected Grill to fulfill Burger, got %q %v", name, ok)
	}

	if err := k.PrepareAt("Grill", "Burger"); err != nil {
		t.Fatalf("PrepareAt failed: %v", err)
	}
	ws, _ := k.Registry().Find("Grill")
	assertStock(t, ws.Stock())

	if err := k.PrepareAt("Grill", "Burger"); !IsNotFound(err) {
		t.Errorf("Expected not found once stock is used up, got %v", err)
	}

	if err := k.MoveStationToFront("Fryer"); err != nil {
		t.Fatalf("MoveStationToFront failed: %v", err)
	}
	if err := k.MergeStations("Fryer", "Grill"); err != nil {
		t.Fatalf("MergeStations failed: %v", err)
	}
	if k.Registry().Len() != 1 {
		t.Errorf("Expected 1 station after merge, got %d", k.Registry().Len())
	}
	fryer, _ := k.Registry().Find("Fryer")
	if _, ok := fryer.Item("Burger"); !ok {
		t.Error("Expected Burger to move to Fryer")
	}
	if err := k.RemoveStation("Grill"); !IsNotFound(err) {
		t.Errorf("Expected not found for merged station, got %v", err)
	}
}

func TestKitchen_BackupOperations(t *testing.T) {
	k := New()

	if err := k.SetBackup([]Ingredient{ing("bun", 2), ing("patty", 0), ing("bun", 1)}); err != nil {
		t.Fatalf("SetBackup failed: %v", err)
	}
	assertStock(t, k.Backup().Stock(), ing("bun", 3))

	if err := k.AddBackup(ing("patty", 2)); err != nil {
		t.Fatalf("AddBackup failed: %v", err)
	}
	if err := k.AddBackup(ing("patty", 0)); !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument for zero deposit, got %v", err)
	}
	assertStock(t, k.Backup().Stock(), ing("bun", 3), ing("patty", 2))

	k.ClearBackup()
	if got := k.Backup().Stock(); len(got) != 0 {
		t.Errorf("Expected empty backup, got %v", got)
	}
}

func TestKitchen_ClearQueue(t *testing.T) {
	k := New()
	enqueue(t, k, newTestItem("Soup"), newTestItem("Salad"))

	if _, err := k.Enqueue(nil); !IsInvalidArgument(err) {
		t.Errorf("Expected invalid argument for nil item, got %v", err)
	}

	dropped := k.ClearQueue()
	if len(dropped) != 2 {
		t.Errorf("Expected 2 dropped orders, got %d", len(dropped))
	}
	if n := len(k.PendingOrders()); n != 0 {
		t.Errorf("Expected empty queue, got %d orders", n)
	}
}
