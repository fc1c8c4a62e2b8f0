package domain

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

// Photo metadata. The image bytes live in the blob store under StorageKey
// (and ThumbnailKey for the downscaled variant, when one exists). Photos are
// populated by out-of-band import tooling and are read-only here.
type Photo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	StorageKey   string    `json:"r2_key"`
	ThumbnailKey *string   `json:"thumbnail_key"`
	Available    bool      `json:"available"`
	CreatedAt    time.Time `json:"created_at"`
}

type Order struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	OrderNumber string      `json:"order_number"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items,omitempty"`

	// Joined from users for display and notification; not columns of orders.
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerEmail string `json:"customer_email,omitempty"`
}

// OrderItem snapshots the photo name at order time so historical orders keep
// rendering correctly if the catalog changes later.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	PhotoID   string `json:"photo_id"`
	PhotoName string `json:"photo_name"`
	Quantity  int    `json:"quantity"`
}

// PasswordResetToken is single-use: redeeming it deletes it.
type PasswordResetToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted:
		return true
	}
	return false
}
