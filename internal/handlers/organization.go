package handlers

import (
	"net/http"

	"curaise/internal/middleware"
	"curaise/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OrganizationHandler handles organization browsing requests
type OrganizationHandler struct {
	organizationService OrganizationService
}

// OrganizationService interface for organization business logic
type OrganizationService interface {
	CreateOrganization(creatorID uuid.UUID, req *models.OrganizationCreateRequest) (*models.Organization, error)
	GetOrganization(id uuid.UUID) (*models.Organization, error)
	GetFundraisers(organizationID uuid.UUID) ([]*models.Fundraiser, error)
	AddMember(actorID, organizationID, userID uuid.UUID) error
}

// NewOrganizationHandler creates a new organization handler
func NewOrganizationHandler(organizationService OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{organizationService: organizationService}
}

// CreateOrganization creates an organization with the caller as its first
// member
func (h *OrganizationHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req models.OrganizationCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	creatorID := middleware.GetUserIDFromContext(r.Context())
	org, err := h.organizationService.CreateOrganization(creatorID, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, org, "organization created")
}

// addMemberRequest carries the user to add to an organization
type addMemberRequest struct {
	UserID uuid.UUID `json:"user_id"`
}

// AddOrganizationMember adds a user to an organization
func (h *OrganizationHandler) AddOrganizationMember(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == uuid.Nil {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	actorID := middleware.GetUserIDFromContext(r.Context())
	if err := h.organizationService.AddMember(actorID, id, req.UserID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, nil, "member added")
}

// GetOrganization returns an organization profile
func (h *OrganizationHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	org, err := h.organizationService.GetOrganization(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, org, "organization retrieved")
}

// GetOrganizationFundraisers returns an organization's fundraisers
func (h *OrganizationHandler) GetOrganizationFundraisers(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid organization id")
		return
	}

	fundraisers, err := h.organizationService.GetFundraisers(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, fundraisers, "fundraisers retrieved")
}
