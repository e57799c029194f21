package stores

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/bistroworks/bistro/pkg/kitchen"

	// SQLite driver
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db  *sql.DB
	cfg Config
}

var _ Store = (*SQLiteStore)(nil)

// Config holds SQLite store configuration.
type Config struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewSQLiteStore creates a new SQLite store instance.
func NewSQLiteStore(cfg Config) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if cfg.MaxOpenConns == 0 {
		cfg.MaxOpenConns = 4
	}
	if cfg.MaxIdleConns == 0 {
		cfg.MaxIdleConns = 2
	}
	if cfg.ConnMaxLifetime == 0 {
		cfg.ConnMaxLifetime = 5 * time.Minute
	}
	return &SQLiteStore{cfg: cfg}, nil
}

// Init opens the database in WAL mode with foreign keys enforced.
func (s *SQLiteStore) Init(ctx context.Context) error {
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)&_txlock=immediate", s.cfg.Path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(s.cfg.MaxOpenConns)
	db.SetMaxIdleConns(s.cfg.MaxIdleConns)
	db.SetConnMaxLifetime(s.cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate applies the embedded schema migrations.
func (s *SQLiteStore) Migrate(_ context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// HealthCheck verifies the database is reachable.
func (s *SQLiteStore) HealthCheck(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database not initialized")
	}
	var one int
	if err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// CreateSession inserts a new, incomplete session.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *Session) error {
	if session.StartedAt.IsZero() {
		session.StartedAt = time.Now()
	}

	query := `
		INSERT INTO sessions (id, kitchen, source, outcome, fulfilled, remaining, started_at, completed_at, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.Kitchen,
		session.Source,
		string(session.Outcome),
		session.Fulfilled,
		session.Remaining,
		session.StartedAt.UnixNano(),
		nanosPtr(session.CompletedAt),
		session.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// CompleteSession records the outcome of a session.
func (s *SQLiteStore) CompleteSession(ctx context.Context, id string, outcome kitchen.DrainOutcome, fulfilled, remaining int, errMsg *string) error {
	query := `
		UPDATE sessions
		SET outcome = ?, fulfilled = ?, remaining = ?, completed_at = ?, error = ?
		WHERE id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		string(outcome), fulfilled, remaining, time.Now().UnixNano(), errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return expectRow(result, id)
}

// GetSession retrieves a session by id.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	query := `
		SELECT id, kitchen, source, outcome, fulfilled, remaining, started_at, completed_at, error
		FROM sessions
		WHERE id = ?
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return session, nil
}

// ListSessions returns sessions, most recent first.
func (s *SQLiteStore) ListSessions(ctx context.Context, limit, offset int) ([]*Session, error) {
	query := `
		SELECT id, kitchen, source, outcome, fulfilled, remaining, started_at, completed_at, error
		FROM sessions
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session and, through cascading keys, its history.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return expectRow(result, id)
}

// SaveOrders replaces the stored orders of a session.
func (s *SQLiteStore) SaveOrders(ctx context.Context, sessionID string, orders []OrderRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM orders WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear orders: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO orders (session_id, order_id, position, item, status, station, attempts)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare order insert: %w", err)
		}
		defer stmt.Close()

		for _, o := range orders {
			if _, err := stmt.ExecContext(ctx, sessionID, o.OrderID, o.Position, o.Item,
				string(o.Status), o.Station, o.Attempts); err != nil {
				return fmt.Errorf("failed to save order %s: %w", o.OrderID, err)
			}
		}
		return nil
	})
}

// ListOrders returns the orders of a session by position.
func (s *SQLiteStore) ListOrders(ctx context.Context, sessionID string) ([]OrderRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, order_id, position, item, status, station, attempts
		FROM orders
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []OrderRecord{}
	for rows.Next() {
		var o OrderRecord
		var status string
		if err := rows.Scan(&o.SessionID, &o.OrderID, &o.Position, &o.Item, &status, &o.Station, &o.Attempts); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Status = kitchen.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}
	return orders, nil
}

// AppendNarrations appends narration lines to a session in one transaction.
func (s *SQLiteStore) AppendNarrations(ctx context.Context, sessionID string, narrations []NarrationRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO narrations (session_id, order_id, kind, station, item, message, timestamp)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare narration insert: %w", err)
		}
		defer stmt.Close()

		for _, n := range narrations {
			ts := n.Timestamp
			if ts.IsZero() {
				ts = time.Now()
			}
			if _, err := stmt.ExecContext(ctx, sessionID, n.OrderID, string(n.Kind), n.Station,
				n.Item, n.Message, ts.UnixNano()); err != nil {
				return fmt.Errorf("failed to append narration: %w", err)
			}
		}
		return nil
	})
}

// ListNarrations returns narration lines of a session in the order they were recorded.
func (s *SQLiteStore) ListNarrations(ctx context.Context, sessionID string, limit, offset int) ([]NarrationRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, order_id, kind, station, item, message, timestamp
		FROM narrations
		WHERE session_id = ?
		ORDER BY id
		LIMIT ? OFFSET ?
	`, sessionID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list narrations: %w", err)
	}
	defer rows.Close()

	out := []NarrationRecord{}
	for rows.Next() {
		var n NarrationRecord
		var kind string
		var ts int64
		if err := rows.Scan(&n.ID, &n.SessionID, &n.OrderID, &kind, &n.Station, &n.Item, &n.Message, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan narration: %w", err)
		}
		n.Kind = kitchen.NarrationKind(kind)
		n.Timestamp = time.Unix(0, ts)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating narrations: %w", err)
	}
	return out, nil
}

// SaveStockSnapshot replaces the stored closing stock of a session.
func (s *SQLiteStore) SaveStockSnapshot(ctx context.Context, sessionID string, stock []StockRecord) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM stock_snapshots WHERE session_id = ?", sessionID); err != nil {
			return fmt.Errorf("failed to clear stock snapshot: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO stock_snapshots (session_id, owner, position, ingredient, quantity)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare stock insert: %w", err)
		}
		defer stmt.Close()

		for i, rec := range stock {
			if _, err := stmt.ExecContext(ctx, sessionID, rec.Owner, i, rec.Ingredient, rec.Quantity); err != nil {
				return fmt.Errorf("failed to save stock %s/%s: %w", rec.Owner, rec.Ingredient, err)
			}
		}
		return nil
	})
}

// ListStockSnapshot returns the closing stock of a session in saved order.
func (s *SQLiteStore) ListStockSnapshot(ctx context.Context, sessionID string) ([]StockRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT owner, ingredient, quantity
		FROM stock_snapshots
		WHERE session_id = ?
		ORDER BY position
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stock snapshot: %w", err)
	}
	defer rows.Close()

	out := []StockRecord{}
	for rows.Next() {
		var rec StockRecord
		if err := rows.Scan(&rec.Owner, &rec.Ingredient, &rec.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var (
		session   Session
		outcome   string
		started   int64
		completed sql.NullInt64
		errMsg    sql.NullString
	)
	if err := row.Scan(&session.ID, &session.Kitchen, &session.Source, &outcome,
		&session.Fulfilled, &session.Remaining, &started, &completed, &errMsg); err != nil {
		return nil, err
	}
	session.Outcome = kitchen.DrainOutcome(outcome)
	session.StartedAt = time.Unix(0, started)
	if completed.Valid {
		t := time.Unix(0, completed.Int64)
		session.CompletedAt = &t
	}
	if errMsg.Valid {
		session.Error = &errMsg.String
	}
	return &session, nil
}

func expectRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

func nanosPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UnixNano()
}
