package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"tally/internal/logging"

	_ "github.com/lib/pq"           // postgres
	_ "github.com/mattn/go-sqlite3" // sqlite3 (cgo)
	_ "modernc.org/sqlite"          // sqlite (pure Go)
)

// Driver names as registered with database/sql.
const (
	DriverSQLite   = "sqlite"
	DriverSQLite3  = "sqlite3"
	DriverPostgres = "postgres"
)

// SQLStore keeps key-value pairs in a single kv table.
type SQLStore struct {
	db     *sql.DB
	driver string
	path   string // database file for the sqlite drivers
	mu     sync.Mutex
}

// NewSQLStore opens (creating if needed) the database and its kv table.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("store DSN required for driver %s", driver)
	}

	s := &SQLStore{driver: driver}
	connStr := dsn

	if driver == DriverSQLite || driver == DriverSQLite3 {
		if dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
			path := dsn
			if i := strings.IndexByte(path, '?'); i >= 0 {
				path = path[:i]
			}
			s.path = path
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return nil, fmt.Errorf("failed to create directory: %w", err)
			}
		}
		connStr = sqliteDSN(driver, dsn)
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dsn == ":memory:" {
		// Every pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	s.db = db

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logging.Store("opened %s store (%s)", driver, redact(dsn))
	return s, nil
}

// sqliteDSN appends WAL and busy-timeout pragmas in the syntax each driver expects.
func sqliteDSN(driver, dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "?") {
		return dsn
	}
	if driver == DriverSQLite3 {
		return dsn + "?_journal_mode=WAL&_busy_timeout=5000"
	}
	return dsn + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func redact(dsn string) string {
	if i := strings.Index(dsn, "@"); i >= 0 {
		if j := strings.Index(dsn, "://"); j >= 0 && j < i {
			return dsn[:j+3] + "***" + dsn[i:]
		}
	}
	return dsn
}

func (s *SQLStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS kv (
		name TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)
	return err
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Get returns the value stored under key.
func (s *SQLStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(s.rebind(`SELECT value FROM kv WHERE name = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *SQLStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(s.rebind(`
	INSERT INTO kv (name, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT (name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`),
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	logging.StoreDebug("set %s=%s", key, value)
	return nil
}

// Keys lists stored keys.
func (s *SQLStore) Keys() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM kv ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// Path returns the database file path, or "" for in-memory and server databases.
func (s *SQLStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
