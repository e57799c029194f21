package kitchen

// Workstation is a production station with its own assigned menu items and
// local stock.
type Workstation struct {
	name  string
	items []MenuItem
	stock Stock
}

// NewWorkstation creates an empty workstation.
func NewWorkstation(name string) *Workstation {
	return &Workstation{name: name}
}

// Name returns the station name.
func (w *Workstation) Name() string {
	return w.name
}

// Items returns the assigned menu items in assignment order.
func (w *Workstation) Items() []MenuItem {
	out := make([]MenuItem, len(w.items))
	copy(out, w.items)
	return out
}

// Item looks up an assigned menu item by name.
func (w *Workstation) Item(name string) (MenuItem, bool) {
	for _, it := range w.items {
		if it.Name() == name {
			return it, true
		}
	}
	return nil, false
}

// Stock returns a snapshot of the station's ingredients.
func (w *Workstation) Stock() []Ingredient {
	return w.stock.Entries()
}

// Quantity returns the on-hand quantity of an ingredient at this station.
func (w *Workstation) Quantity(ingredient string) int {
	return w.stock.Quantity(ingredient)
}

// Assign adds a menu item to the station. Stock is not touched.
func (w *Workstation) Assign(item MenuItem) error {
	if item == nil {
		return newError(KindInvalidArgument, "menu item is nil").WithStation(w.name)
	}
	if _, ok := w.Item(item.Name()); ok {
		return newError(KindDuplicateAssignment, "item already assigned").
			WithStation(w.name).WithItem(item.Name())
	}
	w.items = append(w.items, item)
	return nil
}

// Restock merges an ingredient into the station's stock.
func (w *Workstation) Restock(ing Ingredient) error {
	if err := w.stock.Add(ing); err != nil {
		return err.(*KitchenError).WithStation(w.name)
	}
	return nil
}

// CanFulfill reports whether the item is assigned here and every required
// ingredient is present. Quantities are not compared; Prepare does that.
func (w *Workstation) CanFulfill(name string) bool {
	item, ok := w.Item(name)
	if !ok {
		return false
	}
	for _, req := range item.Requirements() {
		if !w.stock.Has(req.Name) {
			return false
		}
	}
	return true
}

// CanCommit reports whether Prepare would succeed right now.
func (w *Workstation) CanCommit(name string) bool {
	item, ok := w.Item(name)
	if !ok {
		return false
	}
	return w.stock.covers(aggregate(item.Requirements())) == nil
}

// Prepare consumes the item's requirements from the station's stock. Either
// every requirement is deducted or nothing changes.
func (w *Workstation) Prepare(name string) error {
	item, ok := w.Item(name)
	if !ok {
		return newError(KindNotFound, "item not assigned").WithStation(w.name).WithItem(name)
	}
	for _, req := range item.Requirements() {
		if !w.stock.Has(req.Name) {
			return newError(KindNotFound, "ingredient missing").
				WithStation(w.name).WithItem(name).WithIngredient(req.Name)
		}
	}
	reqs := aggregate(item.Requirements())
	if err := w.stock.covers(reqs); err != nil {
		return err.(*KitchenError).WithStation(w.name).WithItem(name)
	}
	for _, req := range reqs {
		if req.Quantity <= 0 {
			continue
		}
		if err := w.stock.Take(req.Name, req.Quantity); err != nil {
			return err
		}
	}
	return nil
}
