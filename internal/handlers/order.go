package handlers

import (
	"context"
	"net/http"

	"curaise/internal/middleware"
	"curaise/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrderHandler handles order lifecycle requests
type OrderHandler struct {
	orderService OrderService
}

// OrderService interface for order business logic
type OrderService interface {
	CreateOrder(ctx context.Context, buyerID uuid.UUID, req *models.OrderCreateRequest) (*models.OrderWithItems, error)
	GetOrder(id uuid.UUID) (*models.OrderWithItems, error)
	GetOrdersByBuyer(buyerID uuid.UUID) ([]*models.OrderWithItems, error)
	ConfirmPayment(actorID, orderID uuid.UUID, status models.PaymentStatus) (*models.Order, error)
	CompletePickup(actorID, orderID uuid.UUID) (*models.Order, error)
	SendOrderConfirmation(orderID uuid.UUID) error
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CreateOrder creates an order for the authenticated buyer
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	buyerID := middleware.GetUserIDFromContext(r.Context())
	order, err := h.orderService.CreateOrder(r.Context(), buyerID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order, "order created")
}

// GetOrder returns one order with its line items
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrder(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order, "order retrieved")
}

// confirmPaymentRequest optionally carries the verification outcome; the
// default outcome is CONFIRMED
type confirmPaymentRequest struct {
	Status models.PaymentStatus `json:"status"`
}

// ConfirmPayment records the seller's manual payment verification
func (h *OrderHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	req := confirmPaymentRequest{Status: models.PaymentConfirmed}
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	order, err := h.orderService.ConfirmPayment(actorID, id, req.Status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order, "payment status updated")
}

// CompletePickup marks an order as picked up
func (h *OrderHandler) CompletePickup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	order, err := h.orderService.CompletePickup(actorID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, order, "pickup completed")
}
