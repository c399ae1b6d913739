// Package store persists the quote list and admin secret in an embedded
// SQLite database. Two string-keyed entries live in a single kv table:
// the JSON-serialized quote list and the raw secret.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // pure-Go sqlite driver

	"github.com/basedfin/quotecast/internal/domain"
)

const (
	keyQuotes = "quotes"
	keySecret = "admin_secret"
)

// Safe to run on every open - uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// SQLiteStore implements ports.QuoteStore on an embedded SQLite file.
// Reads fail soft: anything unusable is reported as absent, never as an
// error, so callers treat a corrupt store exactly like a fresh one.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (creating if needed) the database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral store.
func Open(path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening quote store: %w", err)
	}

	// The driver serializes access per connection; a single connection
	// avoids SQLITE_BUSY under concurrent writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating quote store schema: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load returns the stored quote list. Absent, malformed, or empty content
// all report ok=false.
func (s *SQLiteStore) Load(ctx context.Context) (domain.QuoteList, bool) {
	raw, ok := s.get(ctx, keyQuotes)
	if !ok {
		return nil, false
	}

	var decoded []string
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.logger.DebugContext(ctx, "stored quote list is malformed, treating as absent",
			slog.Any("error", err),
		)

		return nil, false
	}

	list := domain.QuoteListFromStrings(decoded)
	if !list.Valid() {
		s.logger.DebugContext(ctx, "stored quote list is unusable, treating as absent",
			slog.Int("count", len(list)),
		)

		return nil, false
	}

	return list, true
}

// Save persists the quote list, replacing any previous value.
func (s *SQLiteStore) Save(ctx context.Context, list domain.QuoteList) error {
	payload, err := json.Marshal(list.Strings())
	if err != nil {
		return fmt.Errorf("encoding quote list: %w", err)
	}

	return s.put(ctx, keyQuotes, string(payload))
}

// LoadSecret returns the stored admin secret, or the built-in default when
// none has been set.
func (s *SQLiteStore) LoadSecret(ctx context.Context) string {
	raw, ok := s.get(ctx, keySecret)
	if !ok || raw == "" {
		return domain.DefaultAdminSecret
	}

	return raw
}

// SaveSecret persists a new admin secret.
func (s *SQLiteStore) SaveSecret(ctx context.Context, secret string) error {
	return s.put(ctx, keySecret, secret)
}

// get reads a single kv entry, fail-soft.
func (s *SQLiteStore) get(ctx context.Context, key string) (string, bool) {
	var value string

	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false
	case err != nil:
		s.logger.DebugContext(ctx, "quote store read failed, treating as absent",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return "", false
	}

	return value, true
}

// put upserts a single kv entry.
func (s *SQLiteStore) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}

	return nil
}

// Name returns the health check name for this store.
// Implements ports.HealthChecker.
func (s *SQLiteStore) Name() string {
	return "quote-store"
}

// Check verifies the database is reachable.
// Implements ports.HealthChecker.
func (s *SQLiteStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
