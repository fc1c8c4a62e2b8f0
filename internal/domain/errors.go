package domain

import "errors"

// Errors the HTTP layer knows how to translate into machine-readable codes.
// Anything not in this list surfaces as a generic internal error.
var (
	ErrEmailTaken        = errors.New("email already in use")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrOrderNotFound     = errors.New("order not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
)
