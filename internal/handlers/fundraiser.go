package handlers

import (
	"net/http"

	"curaise/internal/middleware"
	"curaise/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// FundraiserHandler handles fundraiser browsing and referral requests
type FundraiserHandler struct {
	fundraiserService FundraiserService
}

// FundraiserService interface for fundraiser business logic
type FundraiserService interface {
	CreateFundraiser(actorID uuid.UUID, req *models.FundraiserCreateRequest) (*models.Fundraiser, error)
	ListFundraisers() ([]*models.Fundraiser, error)
	GetFundraiser(id uuid.UUID) (*models.FundraiserDetail, error)
	GetItems(fundraiserID uuid.UUID) ([]*models.FundraiserItem, error)
	CreateReferral(fundraiserID uuid.UUID, req *models.ReferralCreateRequest) (*models.Referral, error)
	GetReferrals(actorID, fundraiserID uuid.UUID) ([]*models.Referral, error)
}

// NewFundraiserHandler creates a new fundraiser handler
func NewFundraiserHandler(fundraiserService FundraiserService) *FundraiserHandler {
	return &FundraiserHandler{fundraiserService: fundraiserService}
}

// CreateFundraiser creates a fundraiser for one of the caller's organizations
func (h *FundraiserHandler) CreateFundraiser(w http.ResponseWriter, r *http.Request) {
	var req models.FundraiserCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	fundraiser, err := h.fundraiserService.CreateFundraiser(actorID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, fundraiser, "fundraiser created")
}

// ListFundraisers returns all fundraisers
func (h *FundraiserHandler) ListFundraisers(w http.ResponseWriter, r *http.Request) {
	fundraisers, err := h.fundraiserService.ListFundraisers()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fundraisers, "fundraisers retrieved")
}

// GetFundraiser returns one fundraiser with pickup events and announcements
func (h *FundraiserHandler) GetFundraiser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	fundraiser, err := h.fundraiserService.GetFundraiser(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fundraiser, "fundraiser retrieved")
}

// GetFundraiserItems returns a fundraiser's items
func (h *FundraiserHandler) GetFundraiserItems(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	items, err := h.fundraiserService.GetItems(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, items, "items retrieved")
}

// CreateReferral records a referral crediting a member for an order
func (h *FundraiserHandler) CreateReferral(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	var req models.ReferralCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	referral, err := h.fundraiserService.CreateReferral(id, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, referral, "referral recorded")
}

// GetFundraiserReferrals returns a fundraiser's referrals to its sellers
func (h *FundraiserHandler) GetFundraiserReferrals(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid fundraiser id")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	referrals, err := h.fundraiserService.GetReferrals(actorID, id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, referrals, "referrals retrieved")
}
