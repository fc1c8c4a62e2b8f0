package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wijvancees/fotobestel/internal/auth"
	"github.com/wijvancees/fotobestel/internal/domain"
)

// resetTokenTTL is how long a password reset link stays valid.
const resetTokenTTL = time.Hour

// userRepository is the subset of store.UserStore that AccountService requires.
type userRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// resetTokenRepository is the subset of store.ResetTokenStore that
// AccountService requires.
type resetTokenRepository interface {
	Create(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

type accountNotifier interface {
	Welcome(ctx context.Context, user *domain.User) error
	PasswordReset(ctx context.Context, user *domain.User, token string) error
}

type AccountService struct {
	users    userRepository
	tokens   resetTokenRepository
	notifier accountNotifier
	logger   *slog.Logger
}

func NewAccountService(users userRepository, tokens resetTokenRepository, notifier accountNotifier, logger *slog.Logger) *AccountService {
	return &AccountService{users: users, tokens: tokens, notifier: notifier, logger: logger}
}

// Register creates an account with a bcrypt password hash. A duplicate email
// comes back as domain.ErrEmailTaken. The welcome email is best-effort.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	if len(password) < auth.MinPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.notifier.Welcome(ctx, user); err != nil {
		s.logger.Warn("failed to send welcome email", "user_id", user.ID, "error", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate returns the user for valid credentials and (nil, nil) for
// anything else. Unknown email and wrong password are indistinguishable: the
// unknown-email path burns a bcrypt compare so response timing matches.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		auth.BurnPassword(password)
		return nil, nil
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, nil
	}
	return user, nil
}

// ResolveSession maps a session token (the user id carried by the cookie) to
// a user. A nil result means the session is stale and the cookie should be
// cleared.
func (s *AccountService) ResolveSession(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, nil
	}
	return s.users.GetByID(ctx, userID)
}

// RequestPasswordReset behaves identically whether or not the email is
// registered, so the endpoint cannot be used to enumerate accounts. When the
// user exists a single-use token is minted and mailed (best-effort).
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token := uuid.NewString()
	if err := s.tokens.Create(ctx, token, user.ID, resetTokenTTL); err != nil {
		return err
	}

	if err := s.notifier.PasswordReset(ctx, user, token); err != nil {
		s.logger.Warn("failed to send password reset email", "user_id", user.ID, "error", err)
	}
	return nil
}

// ResetPassword redeems the token and rewrites the password hash. The token
// is deleted on redemption; missing and expired tokens report the same
// domain.ErrInvalidResetToken.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < auth.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}

	userID, err := s.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", userID)
	return nil
}
