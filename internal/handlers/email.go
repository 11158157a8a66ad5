package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

// EmailHandler triggers transactional email sends
type EmailHandler struct {
	orderService OrderService
}

// NewEmailHandler creates a new email handler
func NewEmailHandler(orderService OrderService) *EmailHandler {
	return &EmailHandler{orderService: orderService}
}

type orderConfirmationRequest struct {
	OrderID uuid.UUID `json:"order_id"`
}

// SendOrderConfirmation re-sends the confirmation email for an order
func (h *EmailHandler) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var req orderConfirmationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "order_id is required")
		return
	}

	if err := h.orderService.SendOrderConfirmation(req.OrderID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nil, "confirmation email sent")
}
