package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akarpovs/authgate/internal/cryptox"
)

// tokenKey is the fixed row key the token lives under.
const tokenKey = "access_token"

// SQLiteStore is a Store backed by a single-row key-value table. Values are
// sealed with the given key before they reach disk.
type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

func NewSQLiteStore(db *sql.DB, sealKey []byte) *SQLiteStore {
	return &SQLiteStore{db: db, key: sealKey}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, tokenKey).Scan(&sealed)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSession
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session: %w", err)
	}

	token, err := cryptox.Open(s.key, sealed)
	if err != nil {
		return "", fmt.Errorf("failed to unseal session: %w", err)
	}
	return string(token), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	sealed, err := cryptox.Seal(s.key, []byte(token))
	if err != nil {
		return fmt.Errorf("failed to seal session: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, tokenKey, sealed)
	if err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
