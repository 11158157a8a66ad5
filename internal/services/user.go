package services

import (
	"curaise/internal/models"

	"github.com/google/uuid"
)

// UserService handles user-related business logic
type UserService struct {
	userRepo UserRepository
}

// UserRepository interface for user data operations
type UserRepository interface {
	Upsert(id uuid.UUID, req *models.UserUpsertRequest) (*models.User, error)
	GetByID(id uuid.UUID) (*models.User, error)
	GetOrganizations(userID uuid.UUID) ([]*models.Organization, error)
	IsOrganizationMember(userID, organizationID uuid.UUID) (bool, error)
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetUser retrieves a user profile
func (s *UserService) GetUser(id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// UpsertUser creates or updates a user profile for a provider-issued ID.
// Users may only write their own profile.
func (s *UserService) UpsertUser(actorID, id uuid.UUID, req *models.UserUpsertRequest) (*models.User, error) {
	if actorID != id {
		return nil, models.ErrUnauthorized
	}
	return s.userRepo.Upsert(id, req)
}

// GetOrganizations retrieves the organizations a user belongs to
func (s *UserService) GetOrganizations(userID uuid.UUID) ([]*models.Organization, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetOrganizations(userID)
}
