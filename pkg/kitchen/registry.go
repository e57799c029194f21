package kitchen

// Registry is the ordered collection of workstations. Order is the scan
// order used for routing and capability queries.
type Registry struct {
	stations []*Workstation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Len returns the number of registered stations.
func (r *Registry) Len() int {
	return len(r.stations)
}

// Stations returns the stations in scan order.
func (r *Registry) Stations() []*Workstation {
	out := make([]*Workstation, len(r.stations))
	copy(out, r.stations)
	return out
}

// IndexOf returns the position of a station, or -1.
func (r *Registry) IndexOf(name string) int {
	for i, ws := range r.stations {
		if ws.name == name {
			return i
		}
	}
	return -1
}

// Find looks up a station by name.
func (r *Registry) Find(name string) (*Workstation, bool) {
	if i := r.IndexOf(name); i >= 0 {
		return r.stations[i], true
	}
	return nil, false
}

// Insert places a station at pos, which must be within [0, Len()].
func (r *Registry) Insert(pos int, ws *Workstation) error {
	if ws == nil {
		return newError(KindInvalidArgument, "station is nil")
	}
	if pos < 0 || pos > len(r.stations) {
		return newError(KindInvalidArgument, "position %d out of range [0, %d]", pos, len(r.stations)).
			WithStation(ws.name)
	}
	if r.IndexOf(ws.name) >= 0 {
		return newError(KindDuplicateStation, "station already registered").WithStation(ws.name)
	}
	r.stations = append(r.stations, nil)
	copy(r.stations[pos+1:], r.stations[pos:])
	r.stations[pos] = ws
	return nil
}

// Add appends a station to the end of the scan order.
func (r *Registry) Add(ws *Workstation) error {
	return r.Insert(len(r.stations), ws)
}

// Remove drops a station from the registry.
func (r *Registry) Remove(name string) error {
	i := r.IndexOf(name)
	if i < 0 {
		return newError(KindNotFound, "station not registered").WithStation(name)
	}
	r.stations = append(r.stations[:i], r.stations[i+1:]...)
	return nil
}

// MoveToFront makes a station the first one scanned.
func (r *Registry) MoveToFront(name string) error {
	i := r.IndexOf(name)
	if i < 0 {
		return newError(KindNotFound, "station not registered").WithStation(name)
	}
	if i == 0 {
		return nil
	}
	ws := r.stations[i]
	copy(r.stations[1:i+1], r.stations[:i])
	r.stations[0] = ws
	return nil
}

// Merge folds station b into station a and removes b. Items already
// assigned to a are dropped; stock is merged by ingredient name.
func (r *Registry) Merge(a, b string) error {
	if a == b {
		return newError(KindInvalidArgument, "cannot merge a station into itself").WithStation(a)
	}
	dst, ok := r.Find(a)
	if !ok {
		return newError(KindNotFound, "station not registered").WithStation(a)
	}
	src, ok := r.Find(b)
	if !ok {
		return newError(KindNotFound, "station not registered").WithStation(b)
	}
	for _, item := range src.items {
		if err := dst.Assign(item); err != nil && !IsDuplicateAssignment(err) {
			return err
		}
	}
	for _, ing := range src.stock.entries {
		if err := dst.Restock(ing); err != nil {
			return err
		}
	}
	return r.Remove(b)
}

// CanFulfill returns the first station, in scan order, able to fulfill the item.
func (r *Registry) CanFulfill(item string) (*Workstation, bool) {
	for _, ws := range r.stations {
		if ws.CanFulfill(item) {
			return ws, true
		}
	}
	return nil, false
}
