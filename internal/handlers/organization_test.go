package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"curaise/internal/middleware"
	"curaise/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrganizationService struct {
	organizations map[uuid.UUID]*models.Organization
	members       map[uuid.UUID][]uuid.UUID
}

func newFakeOrganizationService() *fakeOrganizationService {
	return &fakeOrganizationService{
		organizations: make(map[uuid.UUID]*models.Organization),
		members:       make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeOrganizationService) CreateOrganization(creatorID uuid.UUID, req *models.OrganizationCreateRequest) (*models.Organization, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	org := &models.Organization{ID: uuid.New(), Name: req.Name}
	f.organizations[org.ID] = org
	f.members[org.ID] = []uuid.UUID{creatorID}
	return org, nil
}

func (f *fakeOrganizationService) GetOrganization(id uuid.UUID) (*models.Organization, error) {
	org, ok := f.organizations[id]
	if !ok {
		return nil, models.ErrOrganizationNotFound
	}
	return org, nil
}

func (f *fakeOrganizationService) GetFundraisers(organizationID uuid.UUID) ([]*models.Fundraiser, error) {
	if _, ok := f.organizations[organizationID]; !ok {
		return nil, models.ErrOrganizationNotFound
	}
	return nil, nil
}

func (f *fakeOrganizationService) AddMember(actorID, organizationID, userID uuid.UUID) error {
	if _, ok := f.organizations[organizationID]; !ok {
		return models.ErrOrganizationNotFound
	}
	for _, existing := range f.members[organizationID] {
		if existing == userID {
			return models.ErrDuplicateEntry
		}
	}
	f.members[organizationID] = append(f.members[organizationID], userID)
	return nil
}

func newOrganizationRouter(service OrganizationService, actorID uuid.UUID) *chi.Mux {
	handler := NewOrganizationHandler(service)

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.SetUserIDContext(r.Context(), actorID)))
		})
	})
	router.Post("/organization", handler.CreateOrganization)
	router.Get("/organization/{id}", handler.GetOrganization)
	router.Post("/organization/{id}/members", handler.AddOrganizationMember)
	return router
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	service := newFakeOrganizationService()
	creatorID := uuid.New()
	router := newOrganizationRouter(service, creatorID)

	rec := doJSON(t, router, http.MethodPost, "/organization", models.OrganizationCreateRequest{Name: "Chess Club"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Data    models.Organization `json:"data"`
		Message string              `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	assert.Equal(t, "Chess Club", env.Data.Name)
	assert.Equal(t, "organization created", env.Message)
	assert.Equal(t, []uuid.UUID{creatorID}, service.members[env.Data.ID])
}

func TestOrganizationHandler_AddOrganizationMember(t *testing.T) {
	service := newFakeOrganizationService()
	creatorID := uuid.New()
	router := newOrganizationRouter(service, creatorID)

	org, err := service.CreateOrganization(creatorID, &models.OrganizationCreateRequest{Name: "Chess Club"})
	require.NoError(t, err)
	inviteeID := uuid.New()

	rec := doJSON(t, router, http.MethodPost, "/organization/"+org.ID.String()+"/members", addMemberRequest{UserID: inviteeID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// adding the same user again is a conflict
	rec = doJSON(t, router, http.MethodPost, "/organization/"+org.ID.String()+"/members", addMemberRequest{UserID: inviteeID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// user_id is required
	rec = doJSON(t, router, http.MethodPost, "/organization/"+org.ID.String()+"/members", addMemberRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/organization/"+uuid.New().String()+"/members", addMemberRequest{UserID: inviteeID})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
