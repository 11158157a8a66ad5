package services

import (
	"fmt"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// FundraiserService handles fundraiser-related business logic
type FundraiserService struct {
	fundraiserRepo    FundraiserRepository
	referralRepo      ReferralRepository
	userRepo          UserRepository
	allowedImageHosts []string
}

// FundraiserRepository interface for fundraiser data operations
type FundraiserRepository interface {
	Create(req *models.FundraiserCreateRequest) (*models.Fundraiser, error)
	GetAll() ([]*models.Fundraiser, error)
	GetByID(id uuid.UUID) (*models.Fundraiser, error)
	GetItems(fundraiserID uuid.UUID) ([]*models.FundraiserItem, error)
	GetItemsByIDs(fundraiserID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]*models.FundraiserItem, error)
	GetPickupEvents(fundraiserID uuid.UUID) ([]*models.PickupEvent, error)
	GetAnnouncements(fundraiserID uuid.UUID) ([]*models.Announcement, error)
}

// ReferralRepository interface for referral data operations
type ReferralRepository interface {
	Create(fundraiserID uuid.UUID, req *models.ReferralCreateRequest) (*models.Referral, error)
	GetByFundraiser(fundraiserID uuid.UUID) ([]*models.Referral, error)
}

// NewFundraiserService creates a new fundraiser service
func NewFundraiserService(fundraiserRepo FundraiserRepository, referralRepo ReferralRepository, userRepo UserRepository, allowedImageHosts []string) *FundraiserService {
	return &FundraiserService{
		fundraiserRepo:    fundraiserRepo,
		referralRepo:      referralRepo,
		userRepo:          userRepo,
		allowedImageHosts: allowedImageHosts,
	}
}

// CreateFundraiser creates a fundraiser for an organization the actor
// belongs to
func (s *FundraiserService) CreateFundraiser(actorID uuid.UUID, req *models.FundraiserCreateRequest) (*models.Fundraiser, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := validateImageHost(req.ImageURL, s.allowedImageHosts); err != nil {
		return nil, err
	}

	isMember, err := s.userRepo.IsOrganizationMember(actorID, req.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.ErrUnauthorized
	}

	return s.fundraiserRepo.Create(req)
}

// ListFundraisers retrieves all fundraisers
func (s *FundraiserService) ListFundraisers() ([]*models.Fundraiser, error) {
	return s.fundraiserRepo.GetAll()
}

// GetFundraiser retrieves a fundraiser with its pickup events and announcements
func (s *FundraiserService) GetFundraiser(id uuid.UUID) (*models.FundraiserDetail, error) {
	fundraiser, err := s.fundraiserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	pickupEvents, err := s.fundraiserRepo.GetPickupEvents(id)
	if err != nil {
		return nil, err
	}

	announcements, err := s.fundraiserRepo.GetAnnouncements(id)
	if err != nil {
		return nil, err
	}

	return &models.FundraiserDetail{
		Fundraiser:    fundraiser,
		PickupEvents:  pickupEvents,
		Announcements: announcements,
	}, nil
}

// GetItems retrieves a fundraiser's items
func (s *FundraiserService) GetItems(fundraiserID uuid.UUID) ([]*models.FundraiserItem, error) {
	if _, err := s.fundraiserRepo.GetByID(fundraiserID); err != nil {
		return nil, err
	}
	return s.fundraiserRepo.GetItems(fundraiserID)
}

// CreateReferral records a referral crediting a member for a fundraiser order
func (s *FundraiserService) CreateReferral(fundraiserID uuid.UUID, req *models.ReferralCreateRequest) (*models.Referral, error) {
	if _, err := s.fundraiserRepo.GetByID(fundraiserID); err != nil {
		return nil, err
	}
	return s.referralRepo.Create(fundraiserID, req)
}

// GetReferrals retrieves a fundraiser's recorded referrals. Referral credit
// is seller-facing, so only members of the organization may list them.
func (s *FundraiserService) GetReferrals(actorID, fundraiserID uuid.UUID) ([]*models.Referral, error) {
	fundraiser, err := s.fundraiserRepo.GetByID(fundraiserID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.userRepo.IsOrganizationMember(actorID, fundraiser.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, models.ErrUnauthorized
	}

	return s.referralRepo.GetByFundraiser(fundraiserID)
}
