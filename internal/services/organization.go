package services

import (
	"curaise/internal/models"

	"github.com/google/uuid"
)

// OrganizationService handles organization-related business logic
type OrganizationService struct {
	organizationRepo  OrganizationRepository
	userRepo          UserRepository
	allowedImageHosts []string
}

// OrganizationRepository interface for organization data operations
type OrganizationRepository interface {
	Create(req *models.OrganizationCreateRequest) (*models.Organization, error)
	GetByID(id uuid.UUID) (*models.Organization, error)
	GetFundraisers(organizationID uuid.UUID) ([]*models.Fundraiser, error)
	AddMember(organizationID, userID uuid.UUID) error
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(organizationRepo OrganizationRepository, userRepo UserRepository, allowedImageHosts []string) *OrganizationService {
	return &OrganizationService{
		organizationRepo:  organizationRepo,
		userRepo:          userRepo,
		allowedImageHosts: allowedImageHosts,
	}
}

// CreateOrganization creates an organization with the creator as its first
// member
func (s *OrganizationService) CreateOrganization(creatorID uuid.UUID, req *models.OrganizationCreateRequest) (*models.Organization, error) {
	if err := validateImageHost(req.LogoURL, s.allowedImageHosts); err != nil {
		return nil, err
	}

	org, err := s.organizationRepo.Create(req)
	if err != nil {
		return nil, err
	}

	if err := s.organizationRepo.AddMember(org.ID, creatorID); err != nil {
		return nil, err
	}

	return org, nil
}

// GetOrganization retrieves an organization by ID
func (s *OrganizationService) GetOrganization(id uuid.UUID) (*models.Organization, error) {
	return s.organizationRepo.GetByID(id)
}

// GetFundraisers retrieves an organization's fundraisers
func (s *OrganizationService) GetFundraisers(organizationID uuid.UUID) ([]*models.Fundraiser, error) {
	if _, err := s.organizationRepo.GetByID(organizationID); err != nil {
		return nil, err
	}
	return s.organizationRepo.GetFundraisers(organizationID)
}

// AddMember adds a user to an organization. Only existing members may add
// new ones; adding a user twice returns ErrDuplicateEntry.
func (s *OrganizationService) AddMember(actorID, organizationID, userID uuid.UUID) error {
	if _, err := s.organizationRepo.GetByID(organizationID); err != nil {
		return err
	}

	isMember, err := s.userRepo.IsOrganizationMember(actorID, organizationID)
	if err != nil {
		return err
	}
	if !isMember {
		return models.ErrUnauthorized
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		return err
	}

	return s.organizationRepo.AddMember(organizationID, userID)
}
