// internal/store/sqlite.go
//
// SQLite implementation of Store.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations in sql/*.sql (idempotent, recorded in _migrations).
//   - Buffering writes and committing them in one transaction on Flush.
//
// Reads see pending writes, so a caller never observes its own write missing
// before Flush. A failed Flush is not retried; Close discards anything not
// flushed.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// pending is a buffered write; deleted marks a buffered Delete.
type pending struct {
	value
	deleted bool
}

type sqliteStore struct {
	db *sql.DB

	mu      sync.Mutex
	pending map[string]pending
	closed  bool
}

// OpenSQLite opens (and creates if missing) a SQLite-backed Store at path and
// applies migrations.
func OpenSQLite(path string) (Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db, pending: make(map[string]pending)}, nil
}

// openDB opens a SQLite database file.
//
//   - Ensures the parent directory exists for relative paths (e.g. ./data/wordguess.db).
//   - Configures busy timeout and WAL journaling mode.
//   - Enforces foreign keys.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies every sql/*.sql file of fsys in lexical order, once.
// Applied files are tracked in the _migrations table.
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	var files []string
	if err := fs.WalkDir(fsys, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("walk sql dir: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// lookup returns the current value at key, consulting pending writes first.
// Caller holds s.mu.
func (s *sqliteStore) lookup(ctx context.Context, key string) (value, bool, error) {
	if s.closed {
		return value{}, false, ErrClosed
	}
	if p, ok := s.pending[key]; ok {
		return p.value, !p.deleted, nil
	}

	var (
		k   string
		str sql.NullString
		num sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT kind, str_value, int_value FROM prefs WHERE key=?`, key,
	).Scan(&k, &str, &num)
	if errors.Is(err, sql.ErrNoRows) {
		return value{}, false, nil
	}
	if err != nil {
		return value{}, false, fmt.Errorf("read %s: %w", key, err)
	}
	return value{kind: kind(k[0]), str: str.String, num: int(num.Int64)}, true, nil
}

// GetString returns the string at key, or def when missing.
func (s *sqliteStore) GetString(ctx context.Context, key, def string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	if v.kind != kindString {
		return def, ErrWrongKind
	}
	return v.str, nil
}

// GetInt returns the integer at key, or def when missing.
func (s *sqliteStore) GetInt(ctx context.Context, key string, def int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok, err := s.lookup(ctx, key)
	if err != nil || !ok {
		return def, err
	}
	if v.kind != kindInt {
		return def, ErrWrongKind
	}
	return v.num, nil
}

// HasKey reports whether key holds a value, pending writes included.
func (s *sqliteStore) HasKey(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok, err := s.lookup(ctx, key)
	return ok, err
}

// SetString buffers a string write until Flush.
func (s *sqliteStore) SetString(_ context.Context, key, str string) error {
	return s.buffer(key, pending{value: value{kind: kindString, str: str}})
}

// SetInt buffers an integer write until Flush.
func (s *sqliteStore) SetInt(_ context.Context, key string, n int) error {
	return s.buffer(key, pending{value: value{kind: kindInt, num: n}})
}

// Delete buffers a removal until Flush.
func (s *sqliteStore) Delete(_ context.Context, key string) error {
	return s.buffer(key, pending{deleted: true})
}

func (s *sqliteStore) buffer(key string, p pending) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.pending[key] = p
	return nil
}

// Flush writes all pending changes in a single transaction. The pending set
// is consumed either way: after a failed Flush the dropped writes are logged
// and reads fall back to what was last committed.
func (s *sqliteStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if len(s.pending) == 0 {
		return nil
	}
	batch := s.pending
	s.pending = make(map[string]pending)

	if err := s.commit(ctx, batch); err != nil {
		log.Warn().Err(err).Int("keys", len(batch)).Msg("dropped unflushed prefs")
		return err
	}
	log.Debug().Int("keys", len(batch)).Msg("flushed prefs")
	return nil
}

func (s *sqliteStore) commit(ctx context.Context, batch map[string]pending) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin flush: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, p := range batch {
		if p.deleted {
			_, err = tx.ExecContext(ctx, `DELETE FROM prefs WHERE key=?`, key)
		} else {
			var str, num any
			if p.kind == kindString {
				str = p.str
			} else {
				num = p.num
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO prefs (key, kind, str_value, int_value, updated_at)
				VALUES (?, ?, ?, ?, strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
				ON CONFLICT(key) DO UPDATE SET
					kind=excluded.kind,
					str_value=excluded.str_value,
					int_value=excluded.int_value,
					updated_at=excluded.updated_at`,
				key, string(rune(p.kind)), str, num)
		}
		if err != nil {
			return fmt.Errorf("flush %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit flush: %w", err)
	}
	return nil
}

// Close releases the database. Unflushed writes are logged and lost.
func (s *sqliteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if n := len(s.pending); n > 0 {
		log.Warn().Int("keys", n).Msg("closing store with unflushed writes")
	}
	return s.db.Close()
}
