package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wijvancees/fotobestel/internal/domain"
)

// orderRepository is the subset of store.OrderStore that OrderService requires.
type orderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
}

type orderNotifier interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	OrderResent(ctx context.Context, order *domain.Order) error
}

type OrderService struct {
	orders   orderRepository
	notifier orderNotifier
	logger   *slog.Logger
}

func NewOrderService(orders orderRepository, notifier orderNotifier, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, notifier: notifier, logger: logger}
}

type OrderItemInput struct {
	PhotoID   string `json:"photoId"`
	PhotoName string `json:"photoName"`
	Quantity  int    `json:"quantity"`
}

type PlaceOrderResult struct {
	OrderNumber string
	EmailSent   bool
}

// PlaceOrder validates the input, writes the order and its line items
// atomically, then attempts the admin and customer notification emails.
// A notification failure never fails the order; it only clears EmailSent.
func (s *OrderService) PlaceOrder(ctx context.Context, user *domain.User, items []OrderItemInput) (*PlaceOrderResult, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyOrder
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		OrderNumber:   newOrderNumber(),
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
		CustomerName:  user.Name,
		CustomerEmail: user.Email,
	}
	for _, item := range items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		if qty < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			PhotoID:   item.PhotoID,
			PhotoName: item.PhotoName,
			Quantity:  qty,
		})
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	s.logger.Info("order placed", "order_id", order.ID, "order_number", order.OrderNumber, "items", len(order.Items))

	emailSent := true
	if err := s.notifier.OrderPlaced(ctx, order); err != nil {
		// The order is durable; email is a courtesy.
		s.logger.Warn("failed to send order notification", "order_id", order.ID, "error", err)
		emailSent = false
	}

	return &PlaceOrderResult{OrderNumber: order.OrderNumber, EmailSent: emailSent}, nil
}

// UpdateStatus moves an order between pending, processing and completed.
// Admin only.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *domain.User, orderID string, status domain.OrderStatus) error {
	if actor == nil || !actor.IsAdmin {
		return domain.ErrUnauthorized
	}
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return err
	}
	s.logger.Info("order status updated", "order_id", orderID, "status", status, "actor", actor.ID)
	return nil
}

// ResendNotification re-sends both order emails for an existing order.
// Admin only.
func (s *OrderService) ResendNotification(ctx context.Context, actor *domain.User, orderID string) (string, error) {
	if actor == nil || !actor.IsAdmin {
		return "", domain.ErrUnauthorized
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return "", err
	}
	if order == nil {
		return "", domain.ErrOrderNotFound
	}

	if err := s.notifier.OrderResent(ctx, order); err != nil {
		return "", err
	}
	s.logger.Info("order notification resent", "order_id", orderID, "actor", actor.ID)
	return order.OrderNumber, nil
}

// ListUserOrders returns the caller's own orders, newest first.
func (s *OrderService) ListUserOrders(ctx context.Context, user *domain.User) ([]*domain.Order, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.orders.ListByUser(ctx, user.ID)
}
