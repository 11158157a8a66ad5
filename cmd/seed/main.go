package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"curaise/internal/config"
	"curaise/internal/database"
	"curaise/internal/models"
	"curaise/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	demoOrgName        = "Demo Club"
	demoFundraiserName = "Winter Bake Sale"
)

// Seeds a demo organization with one live fundraiser for local development.
// Reseeding is a no-op once the demo data exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	userRepo := repositories.NewUserRepository(db.DB)
	orgRepo := repositories.NewOrganizationRepository(db.DB)
	fundraiserRepo := repositories.NewFundraiserRepository(db.DB)

	// Seller account. The ID matches what the auth provider issues, so a
	// fixed UUID keeps reseeding idempotent.
	sellerID := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	seller, err := userRepo.Upsert(sellerID, &models.UserUpsertRequest{
		Email:       "seller@cornell.edu",
		Name:        "Demo Seller",
		NetID:       "ds123",
		VenmoHandle: "@demo-seller",
	})
	if err != nil {
		log.Fatal("Failed to create/update seller:", err)
	}
	fmt.Printf("Seller ready: %s (%s)\n", seller.Name, seller.Email)

	org, err := findOrCreateOrganization(userRepo, orgRepo, sellerID)
	if err != nil {
		log.Fatal("Failed to set up organization:", err)
	}
	fmt.Printf("Organization ready: %s (%s)\n", org.Name, org.ID)

	fundraiser, created, err := findOrCreateFundraiser(orgRepo, fundraiserRepo, org.ID)
	if err != nil {
		log.Fatal("Failed to set up fundraiser:", err)
	}
	if !created {
		fmt.Printf("Fundraiser already seeded: %s (%s)\n", fundraiser.Name, fundraiser.ID)
		return
	}

	if err := seedItems(db, fundraiser.ID); err != nil {
		log.Fatal("Failed to seed items:", err)
	}
	fmt.Printf("Fundraiser ready: %s (%s)\n", fundraiser.Name, fundraiser.ID)
}

func findOrCreateOrganization(userRepo *repositories.UserRepository, orgRepo *repositories.OrganizationRepository, sellerID uuid.UUID) (*models.Organization, error) {
	orgs, err := userRepo.GetOrganizations(sellerID)
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		if org.Name == demoOrgName {
			return org, nil
		}
	}

	org, err := orgRepo.Create(&models.OrganizationCreateRequest{
		Name:        demoOrgName,
		Description: "A student organization for local development.",
	})
	if err != nil {
		return nil, err
	}

	if err := orgRepo.AddMember(org.ID, sellerID); err != nil && !errors.Is(err, models.ErrDuplicateEntry) {
		return nil, err
	}
	return org, nil
}

func findOrCreateFundraiser(orgRepo *repositories.OrganizationRepository, fundraiserRepo *repositories.FundraiserRepository, orgID uuid.UUID) (*models.Fundraiser, bool, error) {
	fundraisers, err := orgRepo.GetFundraisers(orgID)
	if err != nil {
		return nil, false, err
	}
	for _, f := range fundraisers {
		if f.Name == demoFundraiserName {
			return f, false, nil
		}
	}

	now := time.Now()
	fundraiser, err := fundraiserRepo.Create(&models.FundraiserCreateRequest{
		OrganizationID: orgID,
		Name:           demoFundraiserName,
		Description:    "Homemade baked goods to support the club.",
		GoalAmount:     decimal.RequireFromString("500.00"),
		BuyingStartsAt: now.Add(-time.Hour),
		BuyingEndsAt:   now.AddDate(0, 0, 14),
		PickupStartsAt: now.AddDate(0, 0, 15),
		PickupEndsAt:   now.AddDate(0, 0, 16),
	})
	if err != nil {
		return nil, false, err
	}
	return fundraiser, true, nil
}

// seedItems fills in the catalog and pickup event; these have no write
// repository because they are managed out of band in production.
func seedItems(db *database.DB, fundraiserID uuid.UUID) error {
	items := []struct {
		Name        string
		Description string
		Price       string
	}{
		{"Chocolate Chip Cookie", "Baked fresh, sold individually.", "3.50"},
		{"Brownie Box", "Half a dozen fudge brownies.", "10.00"},
		{"Banana Bread Loaf", "A whole loaf, lightly spiced.", "8.00"},
	}
	itemQuery := `
		INSERT INTO fundraiser_items (fundraiser_id, name, description, price)
		VALUES ($1, $2, $3, $4)`
	for _, item := range items {
		if _, err := db.DB.Exec(itemQuery, fundraiserID, item.Name, item.Description, item.Price); err != nil {
			return fmt.Errorf("failed to create item %q: %w", item.Name, err)
		}
	}

	now := time.Now()
	pickupQuery := `
		INSERT INTO pickup_events (fundraiser_id, location, starts_at, ends_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := db.DB.Exec(pickupQuery, fundraiserID, "Ho Plaza", now.AddDate(0, 0, 15), now.AddDate(0, 0, 15).Add(4*time.Hour)); err != nil {
		return fmt.Errorf("failed to create pickup event: %w", err)
	}
	return nil
}
