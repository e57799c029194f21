package stores

import (
	"context"
	"errors"
	"time"

	"github.com/bistroworks/bistro/pkg/kitchen"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// BackupOwner is the stock snapshot owner used for the backup pool.
const BackupOwner = "@backup"

// Session is one recorded run of the fulfillment loop.
type Session struct {
	ID          string               `json:"id"`
	Kitchen     string               `json:"kitchen"`
	Source      string               `json:"source"`
	Outcome     kitchen.DrainOutcome `json:"outcome,omitempty"`
	Fulfilled   int                  `json:"fulfilled"`
	Remaining   int                  `json:"remaining"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt *time.Time           `json:"completed_at,omitempty"`
	Error       *string              `json:"error,omitempty"`
}

// IsComplete reports whether the session finished.
func (s *Session) IsComplete() bool {
	return s.CompletedAt != nil
}

// OrderRecord is the final state of one order in a session.
type OrderRecord struct {
	SessionID string              `json:"session_id"`
	OrderID   string              `json:"order_id"`
	Position  int                 `json:"position"`
	Item      string              `json:"item"`
	Status    kitchen.OrderStatus `json:"status"`
	Station   string              `json:"station,omitempty"`
	Attempts  int                 `json:"attempts"`
}

// NarrationRecord is one stored narration line.
type NarrationRecord struct {
	ID        int64                 `json:"id"`
	SessionID string                `json:"session_id"`
	OrderID   string                `json:"order_id,omitempty"`
	Kind      kitchen.NarrationKind `json:"kind"`
	Station   string                `json:"station,omitempty"`
	Item      string                `json:"item,omitempty"`
	Message   string                `json:"message"`
	Timestamp time.Time             `json:"timestamp"`
}

// StockRecord is one ingredient quantity held by a station or the backup
// pool when a session ended.
type StockRecord struct {
	Owner      string `json:"owner"`
	Ingredient string `json:"ingredient"`
	Quantity   int    `json:"quantity"`
}

// Store persists kitchen session history.
type Store interface {
	Init(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
	HealthCheck(ctx context.Context) error

	CreateSession(ctx context.Context, session *Session) error
	CompleteSession(ctx context.Context, id string, outcome kitchen.DrainOutcome, fulfilled, remaining int, errMsg *string) error
	GetSession(ctx context.Context, id string) (*Session, error)
	ListSessions(ctx context.Context, limit, offset int) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error

	SaveOrders(ctx context.Context, sessionID string, orders []OrderRecord) error
	ListOrders(ctx context.Context, sessionID string) ([]OrderRecord, error)

	AppendNarrations(ctx context.Context, sessionID string, narrations []NarrationRecord) error
	ListNarrations(ctx context.Context, sessionID string, limit, offset int) ([]NarrationRecord, error)

	SaveStockSnapshot(ctx context.Context, sessionID string, stock []StockRecord) error
	ListStockSnapshot(ctx context.Context, sessionID string) ([]StockRecord, error)
}
