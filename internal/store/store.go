package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite" // Pure Go SQLite driver - no CGO required
)

// Store errors surfaced to the service layer.
var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrOwnerMismatch indicates the caller-asserted previous owner does
	// not match the stored owner.
	ErrOwnerMismatch = errors.New("owner mismatch")
)

// Store is the keyed record store backing every business operation.
// Each operation executes inside exactly one transaction via RunInTx,
// which gives the all-or-nothing, isolated-per-call semantics the
// services rely on.
type Store struct {
	db      *sql.DB
	backend string
}

// Tx is an open store transaction. All entity accessors hang off Tx so
// that a business operation cannot accidentally mutate outside its
// atomic unit.
type Tx struct {
	tx *sql.Tx
}

// OpenSQLite opens (and migrates) a SQLite-backed store.
// dbPath is the path to the database file, or ":memory:" for tests.
func OpenSQLite(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}

	// SQLite only supports 1 writer; a single connection also serializes
	// transactions, which is exactly the isolation the operations assume.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := createTables(db, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[Store] SQLite store initialized: %s", dbPath)
	return &Store{db: db, backend: "sqlite"}, nil
}

// OpenMySQL opens (and migrates) a MySQL-backed store.
func OpenMySQL(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createTables(db, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	log.Printf("[Store] MySQL store initialized")
	return &Store{db: db, backend: "mysql"}, nil
}

// createTables applies the schema statements one by one.
func createTables(db *sql.DB, schema []string) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}

// Backend returns the configured backend name ("sqlite" or "mysql").
func (s *Store) Backend() string {
	return s.backend
}

// RunInTx executes fn inside a single transaction. Any error from fn
// rolls back every mutation fn attempted, including inserted events and
// inbox rows; a nil return commits them all at once.
func (s *Store) RunInTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("[Store] Rollback failed after %v: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Stats returns row counts per collection for the admin surface.
func (s *Store) Stats(ctx context.Context) (map[string]interface{}, error) {
	tables := []string{
		"users", "wallet_links", "starter_claims", "inventory_items",
		"listings", "auctions", "bids", "events", "inbox",
		"pvp_matches", "transactions_used", "idempotency",
	}

	stats := make(map[string]interface{}, len(tables)+1)
	stats["backend"] = s.backend

	for _, table := range tables {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", table, err)
		}
		stats[table] = count
	}

	return stats, nil
}

// Ping verifies the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
