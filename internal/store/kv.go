package store

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteFileName = "state.sqlite"

// KV is the external key-value store the chosen group order is written to and read from.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// QueryKV keeps values in URL query parameters, the way a shareable presenter link carries
// the selection.
type QueryKV struct {
	Values url.Values
}

func NewQueryKV(rawQuery string) QueryKV {
	v, err := url.ParseQuery(rawQuery)
	if err != nil {
		// Malformed pairs are dropped; the presenter treats that as an empty selection.
		v = url.Values{}
	}
	return QueryKV{Values: v}
}

func (q QueryKV) Get(_ context.Context, key string) (string, bool, error) {
	if q.Values == nil || !q.Values.Has(key) {
		return "", false, nil
	}
	return q.Values.Get(key), true, nil
}

func (q QueryKV) Set(_ context.Context, key, value string) error {
	if q.Values == nil {
		return errors.New("query kv: nil values")
	}
	q.Values.Set(key, value)
	return nil
}

func (q QueryKV) Encode() string { return q.Values.Encode() }

// Store keeps small persistent state (last selection, selection history) in a SQLite db inside
// Dir. It implements KV.
type Store struct {
	Dir string
}

// DefaultStore returns a Store rooted at the config directory.
func DefaultStore() (Store, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Store{}, err
	}
	return Store{Dir: dir}, nil
}

// SelectionRecord is one committed selection.
type SelectionRecord struct {
	Selection string    `json:"selection" yaml:"selection"`
	Deck      string    `json:"deck,omitempty" yaml:"deck,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Dir) == "" {
		return errors.New("store: empty dir")
	}
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, sqliteFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the CLI, TUI and web presenter may touch the db at the same time.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS selections (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			selection TEXT NOT NULL,
			deck TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_selections_created ON selections(created_at_unixms);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s Store) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM kv WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s Store) Set(ctx context.Context, key, value string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO kv(k, v, updated_at_unixms) VALUES(?, ?, ?)
		 ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		key, value, time.Now().UnixMilli())
	return err
}

// RecordSelection appends a committed selection to the history.
func (s Store) RecordSelection(ctx context.Context, selection, deckPath string) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx,
		`INSERT INTO selections(selection, deck, created_at_unixms) VALUES(?, ?, ?)`,
		selection, strings.TrimSpace(deckPath), time.Now().UnixMilli())
	return err
}

// RecentSelections returns up to limit history entries, newest first.
func (s Store) RecentSelections(ctx context.Context, limit int) ([]SelectionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT selection, deck, created_at_unixms FROM selections ORDER BY created_at_unixms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []SelectionRecord{}
	for rows.Next() {
		var rec SelectionRecord
		var ms int64
		if err := rows.Scan(&rec.Selection, &rec.Deck, &ms); err != nil {
			return nil, err
		}
		rec.CreatedAt = time.UnixMilli(ms).UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
