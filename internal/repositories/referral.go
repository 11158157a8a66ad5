package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"curaise/internal/models"

	"github.com/google/uuid"
)

// ReferralRepository handles referral data operations
type ReferralRepository struct {
	db *sql.DB
}

// NewReferralRepository creates a new referral repository
func NewReferralRepository(db *sql.DB) *ReferralRepository {
	return &ReferralRepository{db: db}
}

// Create records a referral crediting a member for a fundraiser order
func (r *ReferralRepository) Create(fundraiserID uuid.UUID, req *models.ReferralCreateRequest) (*models.Referral, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO referrals (fundraiser_id, referrer_id, order_id, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, fundraiser_id, referrer_id, order_id, created_at`

	referral := &models.Referral{}
	err := r.db.QueryRow(query, fundraiserID, req.ReferrerID, req.OrderID, time.Now()).Scan(
		&referral.ID,
		&referral.FundraiserID,
		&referral.ReferrerID,
		&referral.OrderID,
		&referral.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create referral: %w", err)
	}

	return referral, nil
}

// GetByFundraiser retrieves the referrals recorded for a fundraiser
func (r *ReferralRepository) GetByFundraiser(fundraiserID uuid.UUID) ([]*models.Referral, error) {
	query := `
		SELECT id, fundraiser_id, referrer_id, order_id, created_at
		FROM referrals
		WHERE fundraiser_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(query, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get referrals: %w", err)
	}
	defer rows.Close()

	var referrals []*models.Referral
	for rows.Next() {
		referral := &models.Referral{}
		if err := rows.Scan(&referral.ID, &referral.FundraiserID, &referral.ReferrerID, &referral.OrderID, &referral.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan referral: %w", err)
		}
		referrals = append(referrals, referral)
	}

	return referrals, rows.Err()
}
