package payloads

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists payload envelopes in a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at path and prepares the
// payload table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("database path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chart_payloads (
			id TEXT PRIMARY KEY,
			envelope TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chart_payloads_updated_at
			ON chart_payloads(updated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init payload schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context, id string) (Payload, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT envelope FROM chart_payloads WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load payload: %w", err)
	}
	return decodeEnvelope([]byte(raw))
}

func (s *SQLiteStore) Save(ctx context.Context, id string, payload Payload) (string, error) {
	if payload == nil {
		return "", fmt.Errorf("%w: nil payload", ErrPersistFailure)
	}
	if id == "" {
		id = uuid.NewString()
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO chart_payloads (id, envelope, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			envelope = excluded.envelope,
			updated_at = excluded.updated_at`,
		id, string(raw), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPersistFailure, err)
	}
	return id, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chart_payloads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete payload: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete payload: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chart_payloads WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete stale payloads: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete stale payloads: %w", err)
	}
	return int(affected), nil
}
