package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go driver

	"github.com/zhouzirui/z-timer/backend/internal/model/session"
)

// SQLiteStore implements session.Store on a SQLite database file. Records
// are ordered by an autoincrement sequence so List matches insertion order.
type SQLiteStore struct {
	db  *sql.DB
	ids session.IDGenerator
}

// NewSQLiteStore opens (or creates) the database at path and ensures the schema.
func NewSQLiteStore(path string, ids session.IDGenerator) (*SQLiteStore, error) {
	if ids == nil {
		ids = session.UUIDGenerator
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open failed: %w", err)
	}
	// Single writer keeps appends strictly sequential.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping failed: %w", err)
	}

	store := &SQLiteStore{db: db, ids: ids}
	if err := store.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		elapsed REAL NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: create sessions table: %w", err)
	}
	return nil
}

// Append inserts a new record and returns it.
func (s *SQLiteStore) Append(ctx context.Context, name string, elapsed float64, createdAt time.Time) (session.Record, error) {
	record := session.Record{
		ID:        s.ids.NewID(),
		Name:      name,
		Time:      elapsed,
		CreatedAt: session.Timestamp{Time: createdAt.UTC()},
	}

	query := `INSERT INTO sessions (id, name, elapsed, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, record.ID, record.Name, record.Time,
		record.CreatedAt.Time.Format(time.RFC3339Nano)); err != nil {
		return session.Record{}, fmt.Errorf("sqlite: insert session %s: %w", record.ID, err)
	}
	return record, nil
}

// List returns every record in insertion order.
func (s *SQLiteStore) List(ctx context.Context) ([]session.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, elapsed, created_at FROM sessions ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list sessions: %w", err)
	}
	defer rows.Close()

	records := make([]session.Record, 0)
	for rows.Next() {
		var (
			record    session.Record
			createdAt string
		)
		if err := rows.Scan(&record.ID, &record.Name, &record.Time, &createdAt); err != nil {
			return nil, fmt.Errorf("sqlite: scan session: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("sqlite: session %s has bad created_at %q: %w", record.ID, createdAt, err)
		}
		record.CreatedAt = session.Timestamp{Time: parsed.UTC()}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
