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
	"github.com/lib/pq"
)

// PoolConfig configures connection pooling for the Postgres-backed store.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// DefaultPoolConfig returns default connection pool settings.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 2 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}
}

// PostgresStore implements Store using Postgres or CockroachDB.
type PostgresStore struct {
	db *sql.DB
}

const saveAttempts = 3

// NewPostgresStoreFromDSN creates a payload store using a DSN.
func NewPostgresStoreFromDSN(dsn string, config *PoolConfig) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("dsn is required")
	}
	if config == nil {
		config = DefaultPoolConfig()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.init(config.ConnectTimeout); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *PostgresStore) init(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	statements := []string{
		`CREATE TABLE IF NOT EXISTS chart_payloads (
			id TEXT PRIMARY KEY,
			envelope JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chart_payloads_updated_at
			ON chart_payloads (updated_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init payload schema: %w", err)
		}
	}
	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PostgresStore) Load(ctx context.Context, id string) (Payload, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT envelope FROM chart_payloads WHERE id = $1`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load payload: %w", err)
	}
	return decodeEnvelope(raw)
}

func (s *PostgresStore) Save(ctx context.Context, id string, payload Payload) (string, error) {
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

	var execErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		_, execErr = s.db.ExecContext(ctx,
			`INSERT INTO chart_payloads (id, envelope, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET
				envelope = EXCLUDED.envelope,
				updated_at = EXCLUDED.updated_at`,
			id, raw, time.Now().UTC())
		if execErr == nil {
			return id, nil
		}
		if !isSerializationFailure(execErr) {
			break
		}
	}
	return "", fmt.Errorf("%w: %v", ErrPersistFailure, execErr)
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chart_payloads WHERE id = $1`, id)
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

func (s *PostgresStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM chart_payloads WHERE updated_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete stale payloads: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete stale payloads: %w", err)
	}
	return int(affected), nil
}

// isSerializationFailure reports a transaction retry error from CockroachDB
// or Postgres running in serializable isolation.
func isSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "40001"
	}
	return strings.Contains(strings.ToLower(err.Error()), "restart transaction")
}
