package web

import (
	"net/http"

	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/service"
)

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []service.OrderItemInput `json:"items"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.orders.PlaceOrder(r.Context(), currentUser(r), req.Items)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"orderNumber": result.OrderNumber,
		"emailSent":   result.EmailSent,
	})
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.orders.ListUserOrders(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orders": orders})
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
		Status  string `json:"status"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		badRequest(w, "orderId is required")
		return
	}

	if err := s.orders.UpdateStatus(r.Context(), currentUser(r), req.OrderID, domain.OrderStatus(req.Status)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (s *Server) handleResendOrderEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID string `json:"orderId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.OrderID == "" {
		badRequest(w, "orderId is required")
		return
	}

	number, err := s.orders.ResendNotification(r.Context(), currentUser(r), req.OrderID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "orderNumber": number})
}
