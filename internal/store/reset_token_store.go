package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wijvancees/fotobestel/internal/domain"
)

type ResetTokenStore struct {
	db *sql.DB
}

func NewResetTokenStore(db *sql.DB) *ResetTokenStore {
	return &ResetTokenStore{db: db}
}

func (s *ResetTokenStore) Create(ctx context.Context, token, userID string, ttl time.Duration) error {
	expiresAt := time.Now().UTC().Add(ttl)
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO password_reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)
	`, token, userID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to create reset token: %w", err)
	}
	return nil
}

// Consume validates the token and deletes it in the same transaction, so a
// token can be redeemed at most once. Missing and expired tokens are both
// domain.ErrInvalidResetToken; callers must not be able to tell them apart.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var userID string
	err = tx.QueryRowContext(ctx, `
		SELECT user_id FROM password_reset_tokens WHERE token = ? AND expires_at > ?
	`, token, time.Now().UTC()).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up reset token: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE token = ?`, token); err != nil {
		return "", fmt.Errorf("failed to delete reset token: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit token consumption: %w", err)
	}
	return userID, nil
}

// PurgeExpired clears tokens past their expiry. Expired tokens are already
// unusable; this just keeps the table small.
func (s *ResetTokenStore) PurgeExpired(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM password_reset_tokens WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to purge expired tokens: %w", err)
	}
	return nil
}
