package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wijvancees/fotobestel/internal/domain"
)

func TestResetTokenConsumeOnce(t *testing.T) {
	d := openTestDB(t)
	s := NewResetTokenStore(d)
	ctx := context.Background()

	user := newTestUser("token@example.com")
	require.NoError(t, NewUserStore(d).Create(ctx, user))

	token := uuid.NewString()
	require.NoError(t, s.Create(ctx, token, user.ID, time.Hour))

	userID, err := s.Consume(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Second redemption of the same token must fail.
	_, err = s.Consume(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenExpired(t *testing.T) {
	d := openTestDB(t)
	s := NewResetTokenStore(d)
	ctx := context.Background()

	user := newTestUser("expired@example.com")
	require.NoError(t, NewUserStore(d).Create(ctx, user))

	token := uuid.NewString()
	require.NoError(t, s.Create(ctx, token, user.ID, -time.Minute))

	_, err := s.Consume(ctx, token)
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenUnknown(t *testing.T) {
	d := openTestDB(t)
	s := NewResetTokenStore(d)

	_, err := s.Consume(context.Background(), "never-issued")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestResetTokenPurgeExpired(t *testing.T) {
	d := openTestDB(t)
	s := NewResetTokenStore(d)
	ctx := context.Background()

	user := newTestUser("purge@example.com")
	require.NoError(t, NewUserStore(d).Create(ctx, user))

	live := uuid.NewString()
	require.NoError(t, s.Create(ctx, live, user.ID, time.Hour))
	require.NoError(t, s.Create(ctx, uuid.NewString(), user.ID, -time.Hour))

	require.NoError(t, s.PurgeExpired(ctx))

	var count int
	require.NoError(t, d.QueryRow(`SELECT COUNT(*) FROM password_reset_tokens`).Scan(&count))
	assert.Equal(t, 1, count)

	_, err := s.Consume(ctx, live)
	assert.NoError(t, err)
}
