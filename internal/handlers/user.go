package handlers

import (
	"net/http"

	"curaise/internal/middleware"
	"curaise/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UserHandler handles user profile requests
type UserHandler struct {
	userService  UserService
	orderService OrderService
}

// UserService interface for user business logic
type UserService interface {
	GetUser(id uuid.UUID) (*models.User, error)
	UpsertUser(actorID, id uuid.UUID, req *models.UserUpsertRequest) (*models.User, error)
	GetOrganizations(userID uuid.UUID) ([]*models.Organization, error)
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService UserService, orderService OrderService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		orderService: orderService,
	}
}

// GetUser returns a user profile
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user, "user retrieved")
}

// UpsertUser creates or updates the authenticated user's profile
func (h *UserHandler) UpsertUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req models.UserUpsertRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	user, err := h.userService.UpsertUser(actorID, id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user, "user saved")
}

// GetUserOrders returns the user's orders with line item details. Users may
// only list their own orders.
func (h *UserHandler) GetUserOrders(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if middleware.GetUserIDFromContext(r.Context()) != id {
		respondError(w, http.StatusForbidden, "cannot list another user's orders")
		return
	}

	orders, err := h.orderService.GetOrdersByBuyer(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders, "orders retrieved")
}

// GetUserOrganizations returns the organizations the user belongs to
func (h *UserHandler) GetUserOrganizations(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	organizations, err := h.userService.GetOrganizations(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, organizations, "organizations retrieved")
}
