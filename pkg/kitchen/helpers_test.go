package kitchen

import "testing"

// testItem is a minimal MenuItem used across the package tests.
type testItem struct {
	name    string
	reqs    []Requirement
	applied []DietaryRequest
}

func newTestItem(name string, reqs ...Requirement) *testItem {
	return &testItem{name: name, reqs: reqs}
}

func (i *testItem) Name() string { return i.name }

func (i *testItem) Requirements() []Requirement {
	out := make([]Requirement, len(i.reqs))
	copy(out, i.reqs)
	return out
}

func (i *testItem) ApplyDietary(req DietaryRequest) {
	i.applied = append(i.applied, req)
}

func req(name string, qty int) Requirement {
	return Requirement{Name: name, Quantity: qty}
}

func ing(name string, qty int) Ingredient {
	return Ingredient{Name: name, Quantity: qty}
}

// recordingNarrator keeps every narration for assertions.
type recordingNarrator struct {
	lines []Narration
}

func (r *recordingNarrator) Narrate(n Narration) {
	r.lines = append(r.lines, n)
}

func (r *recordingNarrator) kinds() []NarrationKind {
	out := make([]NarrationKind, len(r.lines))
	for i, n := range r.lines {
		out[i] = n.Kind
	}
	return out
}

func (r *recordingNarrator) stationsAttempted() []string {
	var out []string
	for _, n := range r.lines {
		if n.Kind == NarrationAttempting {
			out = append(out, n.Station)
		}
	}
	return out
}

func newStation(t *testing.T, name string, items []MenuItem, stock ...Ingredient) *Workstation {
	t.Helper()
	ws := NewWorkstation(name)
	for _, it := range items {
		if err := ws.Assign(it); err != nil {
			t.Fatalf("Assign(%s) failed: %v", it.Name(), err)
		}
	}
	for _, s := range stock {
		if err := ws.Restock(s); err != nil {
			t.Fatalf("Restock(%s) failed: %v", s.Name, err)
		}
	}
	return ws
}

func assertStock(t *testing.T, got []Ingredient, want ...Ingredient) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected stock %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected stock entry %d to be %v, got %v", i, want[i], got[i])
		}
	}
}
