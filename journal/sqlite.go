package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rustyeddy/arbitrage/market"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// PersistenceError wraps a failure of the underlying database. The
// transaction it happened in has been rolled back and may be retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persist(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return &PersistenceError{Op: op, Err: err}
}

// Store is the sqlite backed record of cycles, days, vault positions,
// sales and cash movements. The application opens one and hands it to
// whoever needs it.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path, applies the
// schema and seeds the asset catalog.
func Open(path string) (*Store, error) {
	dsn := path + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, persist("open", err)
	}
	// One connection: sqlite serializes writers anyway and a single
	// handle keeps transactions from deadlocking each other.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, persist("schema", err)
	}

	s := &Store{db: db, path: path}
	if err := s.seedAssets(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) seedAssets(ctx context.Context) error {
	symbols := make([]string, 0, len(market.Assets))
	for sym := range market.Assets {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	return s.Update(ctx, func(tx *Tx) error {
		for _, sym := range symbols {
			a := market.Assets[sym]
			_, err := tx.q.ExecContext(ctx, `
				INSERT OR IGNORE INTO criptomonedas (nombre, simbolo, tipo, decimales)
				VALUES (?, ?, ?, ?)`,
				a.Name, a.Symbol, string(a.Kind), a.Decimals,
			)
			if err != nil {
				return persist("seed assets", err)
			}
		}
		return nil
	})
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx is the handle passed to View and Update callbacks. Inside Update
// every call runs in the same sqlite transaction.
type Tx struct {
	q querier
}

// View runs fn against the database without a write transaction.
func (s *Store) View(ctx context.Context, fn func(*Tx) error) error {
	return fn(&Tx{q: s.db})
}

// Update runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise.
func (s *Store) Update(ctx context.Context, fn func(*Tx) error) (err error) {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persist("begin", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = sqlTx.Rollback()
			panic(p)
		}
	}()

	if err := fn(&Tx{q: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return persist("commit", err)
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryAll runs query and scans every row with scan. Rows are fully read
// and closed before returning so the single connection is free again.
func queryAll[T any](ctx context.Context, q querier, op string, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persist(op, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, persist(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, persist(op, err)
	}
	return out, nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
