package kitchen

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/bistroworks/bistro/pkg/kitchen"

// Kitchen is one fulfillment session: the station registry, the backup
// pool and the order queue. Exported methods are serialized by a single
// lock, so a Kitchen may be shared between goroutines. The components
// returned by Registry, Backup and Queue are not locked.
type Kitchen struct {
	mu sync.Mutex

	id       string
	registry *Registry
	backup   *BackupInventory
	queue    *OrderQueue

	logger   zerolog.Logger
	narrator Narrator
	recorder Recorder
	tracer   trace.Tracer
}

// Option configures a Kitchen.
type Option func(*Kitchen)

// WithSessionID overrides the generated session id.
func WithSessionID(id string) Option {
	return func(k *Kitchen) { k.id = id }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(k *Kitchen) { k.logger = logger }
}

// WithNarrator sets the narration sink.
func WithNarrator(n Narrator) Option {
	return func(k *Kitchen) {
		if n != nil {
			k.narrator = n
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(k *Kitchen) {
		if r != nil {
			k.recorder = r
		}
	}
}

// WithTracer sets the tracer. The global otel tracer is used otherwise.
func WithTracer(t trace.Tracer) Option {
	return func(k *Kitchen) {
		if t != nil {
			k.tracer = t
		}
	}
}

// New creates an empty kitchen session.
func New(opts ...Option) *Kitchen {
	k := &Kitchen{
		id:       uuid.New().String(),
		registry: NewRegistry(),
		backup:   &BackupInventory{},
		queue:    NewOrderQueue(),
		logger:   zerolog.Nop(),
		narrator: discardNarrator{},
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(k)
	}
	if k.tracer == nil {
		k.tracer = otel.Tracer(tracerName)
	}
	k.logger = k.logger.With().Str("session_id", k.id).Logger()
	return k
}

// ID returns the session id.
func (k *Kitchen) ID() string {
	return k.id
}

// Registry returns the station registry.
func (k *Kitchen) Registry() *Registry {
	return k.registry
}

// Backup returns the backup pool.
func (k *Kitchen) Backup() *BackupInventory {
	return k.backup
}

// Queue returns the order queue.
func (k *Kitchen) Queue() *OrderQueue {
	return k.queue
}

// AddStation appends a station to the scan order.
func (k *Kitchen) AddStation(ws *Workstation) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.registry.Add(ws)
}

// InsertStation places a station at pos in the scan order.
func (k *Kitchen) InsertStation(pos int, ws *Workstation) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.registry.Insert(pos, ws)
}

// RemoveStation drops a station.
func (k *Kitchen) RemoveStation(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.registry.Remove(name)
}

// MoveStationToFront makes a station the first one scanned.
func (k *Kitchen) MoveStationToFront(name string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.registry.MoveToFront(name)
}

// MergeStations folds station b into station a.
func (k *Kitchen) MergeStations(a, b string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.registry.Merge(a, b)
}

// AssignItem assigns a menu item to a named station.
func (k *Kitchen) AssignItem(station string, item MenuItem) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	ws, err := k.station(station)
	if err != nil {
		return err
	}
	return ws.Assign(item)
}

// ReplenishStation restocks a named station directly.
func (k *Kitchen) ReplenishStation(station string, ing Ingredient) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	ws, err := k.station(station)
	if err != nil {
		return err
	}
	return ws.Restock(ing)
}

// ReplenishFromBackup moves qty units of an ingredient from the backup pool
// to a named station. Nothing changes on failure.
func (k *Kitchen) ReplenishFromBackup(station, ingredient string, qty int) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	ws, err := k.station(station)
	if err != nil {
		return err
	}
	return k.transfer(ws, ingredient, qty)
}

// transfer withdraws from the backup pool and restocks the station.
func (k *Kitchen) transfer(ws *Workstation, ingredient string, qty int) error {
	err := k.backup.Withdraw(ingredient, qty)
	k.recorder.RecordWithdrawal(ingredient, qty, err)
	if err != nil {
		return err.(*KitchenError).WithStation(ws.name)
	}
	return ws.Restock(Ingredient{Name: ingredient, Quantity: qty})
}

// SetBackup replaces the backup pool.
func (k *Kitchen) SetBackup(ingredients []Ingredient) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.backup.Replace(ingredients)
}

// AddBackup deposits an ingredient into the backup pool.
func (k *Kitchen) AddBackup(ing Ingredient) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.backup.Deposit(ing)
}

// ClearBackup empties the backup pool.
func (k *Kitchen) ClearBackup() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.backup.Clear()
}

// CanFulfill returns the name of the first station able to fulfill an item.
func (k *Kitchen) CanFulfill(item string) (string, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ws, ok := k.registry.CanFulfill(item); ok {
		return ws.name, true
	}
	return "", false
}

// PrepareAt prepares one item at a named station without touching the queue.
func (k *Kitchen) PrepareAt(station, item string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	ws, err := k.station(station)
	if err != nil {
		return err
	}
	return ws.Prepare(item)
}

// Enqueue adds an order for item at the tail of the queue.
func (k *Kitchen) Enqueue(item MenuItem) (*Order, error) {
	return k.EnqueueWithRequest(item, DietaryRequest{})
}

// EnqueueWithRequest applies a dietary request to item and queues an order
// for it. The item is shared, so the change is seen by every station it is
// assigned to.
func (k *Kitchen) EnqueueWithRequest(item MenuItem, req DietaryRequest) (*Order, error) {
	if item == nil {
		return nil, newError(KindInvalidArgument, "menu item is nil")
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	if !req.IsZero() {
		item.ApplyDietary(req)
	}
	o := NewOrder(item)
	k.queue.Push(o)
	k.recorder.SetQueueDepth(k.queue.Len())
	return o, nil
}

// PendingOrders returns the queued orders, head first.
func (k *Kitchen) PendingOrders() []*Order {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.queue.Orders()
}

// ClearQueue drops every queued order and returns them.
func (k *Kitchen) ClearQueue() []*Order {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := k.queue.Clear()
	k.recorder.SetQueueDepth(0)
	return out
}

func (k *Kitchen) station(name string) (*Workstation, error) {
	ws, ok := k.registry.Find(name)
	if !ok {
		return nil, newError(KindNotFound, "station not registered").WithStation(name)
	}
	return ws, nil
}
