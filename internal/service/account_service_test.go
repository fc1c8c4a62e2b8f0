package service

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wijvancees/fotobestel/internal/db"
	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/store"
)

// stubNotifier records notifications; it stands in for notify.Notifier.
type stubNotifier struct {
	welcomed    []string
	resetTokens []string
	placed      []*domain.Order
	resent      []*domain.Order
	err         error
}

func (n *stubNotifier) Welcome(_ context.Context, user *domain.User) error {
	if n.err != nil {
		return n.err
	}
	n.welcomed = append(n.welcomed, user.Email)
	return nil
}

func (n *stubNotifier) PasswordReset(_ context.Context, _ *domain.User, token string) error {
	if n.err != nil {
		return n.err
	}
	n.resetTokens = append(n.resetTokens, token)
	return nil
}

func (n *stubNotifier) OrderPlaced(_ context.Context, order *domain.Order) error {
	if n.err != nil {
		return n.err
	}
	n.placed = append(n.placed, order)
	return nil
}

func (n *stubNotifier) OrderResent(_ context.Context, order *domain.Order) error {
	if n.err != nil {
		return n.err
	}
	n.resent = append(n.resent, order)
	return nil
}

func newAccountService(t *testing.T) (*AccountService, *stubNotifier) {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	notifier := &stubNotifier{}
	svc := NewAccountService(store.NewUserStore(d), store.NewResetTokenStore(d), notifier, slog.Default())
	return svc, notifier
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, notifier := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "cees@example.com", "zomer2024!", "Cees")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.IsAdmin)
	assert.Equal(t, []string{"cees@example.com"}, notifier.welcomed)

	authed, err := svc.Authenticate(ctx, "cees@example.com", "zomer2024!")
	require.NoError(t, err)
	require.NotNil(t, authed)
	assert.Equal(t, user.ID, authed.ID)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newAccountService(t)

	_, err := svc.Register(context.Background(), "cees@example.com", "short", "Cees")
	assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dup@example.com", "zomer2024!", "First")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "dup@example.com", "winter2024!", "Second")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)

	// The first registration is untouched and can still log in.
	user, err := svc.Authenticate(ctx, "dup@example.com", "zomer2024!")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "First", user.Name)
}

func TestRegisterSucceedsWhenWelcomeMailFails(t *testing.T) {
	svc, notifier := newAccountService(t)
	notifier.err = errors.New("mail provider down")

	user, err := svc.Register(context.Background(), "cees@example.com", "zomer2024!", "Cees")
	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestAuthenticateNoMatchIsNotAnError(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "cees@example.com", "zomer2024!", "Cees")
	require.NoError(t, err)

	// Wrong password and unknown email produce the same outcome.
	user, err := svc.Authenticate(ctx, "cees@example.com", "wrong password")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "nobody@example.com", "zomer2024!")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestResolveSession(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "cees@example.com", "zomer2024!", "Cees")
	require.NoError(t, err)

	resolved, err := svc.ResolveSession(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.Email, resolved.Email)

	// Stale token (deleted or never-existing user) resolves to nil.
	resolved, err = svc.ResolveSession(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, resolved)

	resolved, err = svc.ResolveSession(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, resolved)
}

func TestPasswordResetFlow(t *testing.T) {
	svc, notifier := newAccountService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "cees@example.com", "zomer2024!", "Cees")
	require.NoError(t, err)

	require.NoError(t, svc.RequestPasswordReset(ctx, "cees@example.com"))
	require.Len(t, notifier.resetTokens, 1)
	token := notifier.resetTokens[0]

	require.NoError(t, svc.ResetPassword(ctx, token, "winter2025!"))

	// Old password no longer works, new one does.
	user, err := svc.Authenticate(ctx, "cees@example.com", "zomer2024!")
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.Authenticate(ctx, "cees@example.com", "winter2025!")
	require.NoError(t, err)
	assert.NotNil(t, user)

	// The token is single-use.
	err = svc.ResetPassword(ctx, token, "another-pass1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}

func TestRequestPasswordResetUnknownEmail(t *testing.T) {
	svc, notifier := newAccountService(t)

	// Externally indistinguishable from the known-email case.
	err := svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Empty(t, notifier.resetTokens)
}

func TestResetPasswordUnknownToken(t *testing.T) {
	svc, _ := newAccountService(t)

	err := svc.ResetPassword(context.Background(), "never-issued", "winter2025!")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}
