package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"labrain/validator"

	_ "github.com/mattn/go-sqlite3"
)

// querier is satisfied by both the pinned *sql.Conn and a *sql.Tx, so row
// helpers run the same way inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store owns the single SQLite connection of the process. It is shared by
// reference: the opener holds the first reference, every hydrated entity
// takes another one via Share, and the connection is closed when the last
// holder calls Release.
//
// All access to the connection is serialized by one mutex. Every exported
// operation takes it exactly once; helpers that run under it never lock
// again.
type Store struct {
	mu       sync.Mutex
	db       *sql.DB
	conn     *sql.Conn
	path     string
	refs     int
	validate *validator.Validator
}

// New opens (or creates) the store backed by the file at dbPath.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, directoryErr("open store", fmt.Errorf("failed to create database directory: %w", err))
	}

	return open(dbPath+"?_foreign_keys=on", dbPath)
}

// NewInMemory opens a private in-memory store. Nothing is written to disk
// and the data disappears with the last reference.
func NewInMemory() (*Store, error) {
	return open(":memory:?_foreign_keys=on", "")
}

func open(dsn, path string) (*Store, error) {
	const op = "open store"

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storageErr(op, fmt.Errorf("failed to open database: %w", err))
	}

	// One physical connection; an in-memory database lives and dies with it.
	db.SetMaxOpenConns(1)

	conn, err := db.Conn(context.Background())
	if err != nil {
		db.Close()
		return nil, storageErr(op, fmt.Errorf("failed to open database: %w", err))
	}

	s := &Store{
		db:       db,
		conn:     conn,
		path:     path,
		refs:     1,
		validate: validator.New(),
	}

	if err := s.init(); err != nil {
		s.closeLocked()
		return nil, storageErr(op, err)
	}

	return s, nil
}

func (s *Store) init() error {
	ctx := context.Background()

	// Cascades are silently inert without this, so it must precede any DDL.
	if _, err := s.conn.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	var enabled int
	if err := s.conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("failed to read foreign key setting: %w", err)
	}
	if enabled != 1 {
		return errors.New("foreign key enforcement is not available")
	}

	if s.path != "" {
		if _, err := s.conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return migrate(s.conn)
}

// Path returns the backing file, or false for an in-memory store.
func (s *Store) Path() (string, bool) {
	return s.path, s.path != ""
}

// Share registers another holder and returns the same store.
func (s *Store) Share() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs++
	return s
}

// Release drops one reference. The connection is closed when the count
// reaches zero; releasing more often than sharing is reported as ErrClosed.
func (s *Store) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refs == 0 {
		return storageErr("release store", ErrClosed)
	}
	s.refs--
	if s.refs > 0 {
		return nil
	}
	if err := s.closeLocked(); err != nil {
		return storageErr("release store", err)
	}
	return nil
}

// Refs reports how many holders currently reference the store.
func (s *Store) Refs() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.refs
}

func (s *Store) closeLocked() error {
	if s.conn == nil {
		return nil
	}
	connErr := s.conn.Close()
	dbErr := s.db.Close()
	s.conn = nil
	return errors.Join(connErr, dbErr)
}

// do runs fn against the connection while holding the lock. Any error is
// reported as a storage error.
func (s *Store) do(op string, fn func(q querier) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return storageErr(op, ErrClosed)
	}
	if err := fn(s.conn); err != nil {
		return storageErr(op, err)
	}
	return nil
}

// withTx runs fn inside one transaction. Nothing is committed unless fn
// and the commit both succeed; on failure the transaction is rolled back
// and the original error is returned.
func (s *Store) withTx(op string, fn func(tx *sql.Tx) error) error {
	return s.do(op, func(_ querier) error {
		tx, err := s.conn.BeginTx(context.Background(), nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
}
