package handlers

import (
	"net/http"

	"curaise/internal/cart"
	"curaise/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CartHandler handles the authenticated buyer's per-fundraiser carts
type CartHandler struct {
	cartRepo          cart.SnapshotRepository
	fundraiserService FundraiserService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartRepo cart.SnapshotRepository, fundraiserService FundraiserService) *CartHandler {
	return &CartHandler{
		cartRepo:          cartRepo,
		fundraiserService: fundraiserService,
	}
}

// cartView is the read projection of one fundraiser's cart
type cartView struct {
	FundraiserID  string          `json:"fundraiser_id"`
	Items         []cart.LineItem `json:"items"`
	TotalQuantity int             `json:"total_quantity"`
	Total         string          `json:"total"`
}

// cartItemRequest carries a cart mutation for one item
type cartItemRequest struct {
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

func (h *CartHandler) openStore(r *http.Request) (*cart.Store, error) {
	buyerID := middleware.GetUserIDFromContext(r.Context())
	return cart.Open(r.Context(), buyerID.String(), h.cartRepo)
}

func (h *CartHandler) respondCart(w http.ResponseWriter, store *cart.Store, fundraiserID string, message string) {
	items := store.GetCartItems(fundraiserID)
	respondJSON(w, http.StatusOK, cartView{
		FundraiserID:  fundraiserID,
		Items:         items,
		TotalQuantity: store.GetTotalQuantity(fundraiserID),
		Total:         cart.Total(items).StringFixed(2),
	}, message)
}

// GetCart returns the buyer's cart for a fundraiser
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	fundraiserID, err := uuid.Parse(chi.URLParam(r, "fundraiserId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondCart(w, store, fundraiserID.String(), "cart retrieved")
}

// AddItem adds quantity of an item to the buyer's cart, snapshotting the
// item's current name and price
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	fundraiserID, err := uuid.Parse(chi.URLParam(r, "fundraiserId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.fundraiserService.GetItems(fundraiserID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var snapshot *cart.Item
	for _, item := range items {
		if item.ID == req.ItemID {
			snapshot = &cart.Item{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
				ImageURL:    item.ImageURL,
			}
			break
		}
	}
	if snapshot == nil {
		respondError(w, http.StatusNotFound, "item not found")
		return
	}

	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := store.AddItem(r.Context(), fundraiserID.String(), *snapshot, req.Quantity); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondCart(w, store, fundraiserID.String(), "item added")
}

// UpdateItem sets the quantity for a line item; zero removes it
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	fundraiserID, err := uuid.Parse(chi.URLParam(r, "fundraiserId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	var req cartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := store.UpdateQuantity(r.Context(), fundraiserID.String(), req.ItemID, req.Quantity); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondCart(w, store, fundraiserID.String(), "cart updated")
}

// RemoveItem deletes a line item from the buyer's cart
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	fundraiserID, err := uuid.Parse(chi.URLParam(r, "fundraiserId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := store.RemoveItem(r.Context(), fundraiserID.String(), itemID); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondCart(w, store, fundraiserID.String(), "item removed")
}

// ClearCart empties the buyer's cart for one fundraiser
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	fundraiserID, err := uuid.Parse(chi.URLParam(r, "fundraiserId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := store.ClearCart(r.Context(), fundraiserID.String()); err != nil {
		respondServiceError(w, err)
		return
	}

	h.respondCart(w, store, fundraiserID.String(), "cart cleared")
}

// ClearAllCarts empties every cart the buyer has
func (h *CartHandler) ClearAllCarts(w http.ResponseWriter, r *http.Request) {
	store, err := h.openStore(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := store.ClearAllCarts(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, nil, "all carts cleared")
}
