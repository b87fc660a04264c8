// Package seed bootstraps the default admin user and, when enabled,
// a small set of sample CRM records for local evaluation.
package seed

import (
	"context"
	"errors"
	"time"

	activitydomain "github.com/brightsales/atlas/internal/activity/domain"
	authdomain "github.com/brightsales/atlas/internal/auth/domain"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	pkgdb "github.com/brightsales/atlas/pkg/db"
	"github.com/bwmarrin/snowflake"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@atlas.local"
	defaultAdminPassword = "admin"
	defaultAdminName     = "Atlas Admin"
)

// EnsureAdminUser creates the default admin account when no user with
// its email exists yet.
func EnsureAdminUser(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&authdomain.User{}).
		Where("email = ?", defaultAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	err = db.WithContext(ctx).Create(&authdomain.User{
		ID:           node.Generate().Int64(),
		Email:        defaultAdminEmail,
		PasswordHash: string(hash),
		Name:         defaultAdminName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}).Error
	if pkgdb.IsDuplicateKeyErr(err) {
		// another instance seeded the admin between the check and the insert
		return nil
	}
	return err
}

// EnsureSampleData seeds a handful of companies, contacts,
// opportunities, and activities. It is a no-op when any company
// already exists.
func EnsureSampleData(db *gorm.DB, node *snowflake.Node) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&companydomain.Company{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()

		company := func(name, industry, website string, fields datatypes.JSONMap) companydomain.Company {
			return companydomain.Company{
				ID:           node.Generate().Int64(),
				Name:         name,
				Industry:     industry,
				Website:      website,
				CustomFields: fields,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}

		techCorp := company("TechCorp Solutions", "Technology", "https://techcorp.com",
			datatypes.JSONMap{"employees": 250, "founded": 2015})
		cloudCo := company("CloudCo", "Cloud Computing", "https://cloudco.io",
			datatypes.JSONMap{"employees": 150, "founded": 2018})
		retailPlus := company("RetailPlus", "Retail", "https://retailplus.com",
			datatypes.JSONMap{"employees": 500, "founded": 2010})

		for _, c := range []*companydomain.Company{&techCorp, &cloudCo, &retailPlus} {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		contact := func(first, last, email, phone, role string, companyID int64) contactdomain.Contact {
			return contactdomain.Contact{
				ID:           node.Generate().Int64(),
				FirstName:    first,
				LastName:     last,
				Email:        email,
				Phone:        phone,
				Role:         role,
				CustomFields: datatypes.JSONMap{},
				CompanyID:    companyID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}

		johnDoe := contact("John", "Doe", "john.doe@techcorp.com", "+1-555-0123", "CTO", techCorp.ID)
		janeSmith := contact("Jane", "Smith", "jane.smith@cloudco.io", "+1-555-0456", "CEO", cloudCo.ID)
		bobWilson := contact("Bob", "Wilson", "bob.wilson@retailplus.com", "+1-555-0789", "VP Sales", retailPlus.ID)

		for _, c := range []*contactdomain.Contact{&johnDoe, &janeSmith, &bobWilson} {
			if err := tx.Create(c).Error; err != nil {
				return err
			}
		}

		opportunity := func(title string, amount float64, status string, closeDate time.Time, companyID, contactID int64, fields datatypes.JSONMap) opportunitydomain.Opportunity {
			return opportunitydomain.Opportunity{
				ID:           node.Generate().Int64(),
				Title:        title,
				Amount:       &amount,
				Status:       status,
				CloseDate:    &closeDate,
				CustomFields: fields,
				CompanyID:    companyID,
				ContactID:    &contactID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}

		opportunities := []opportunitydomain.Opportunity{
			opportunity("Cloud Migration Project", 150000, opportunitydomain.StatusProposal,
				time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), techCorp.ID, johnDoe.ID,
				datatypes.JSONMap{"priority": "high", "source": "website"}),
			opportunity("AI Platform Implementation", 250000, opportunitydomain.StatusNegotiation,
				time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC), cloudCo.ID, janeSmith.ID,
				datatypes.JSONMap{"priority": "high", "source": "referral"}),
			opportunity("E-commerce Platform Upgrade", 75000, opportunitydomain.StatusClosedWon,
				time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), retailPlus.ID, bobWilson.ID,
				datatypes.JSONMap{"priority": "medium", "source": "cold_call"}),
		}
		for i := range opportunities {
			if err := tx.Create(&opportunities[i]).Error; err != nil {
				return err
			}
		}

		activity := func(activityType, details string, companyID, contactID int64) activitydomain.Activity {
			return activitydomain.Activity{
				ID:           node.Generate().Int64(),
				Type:         activityType,
				Details:      details,
				OccurredAt:   now,
				CustomFields: datatypes.JSONMap{},
				CompanyID:    companyID,
				ContactID:    &contactID,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}

		activities := []activitydomain.Activity{
			activity(activitydomain.TypeCall, "Initial discovery call about cloud migration needs", techCorp.ID, johnDoe.ID),
			activity(activitydomain.TypeEmail, "Sent proposal for AI platform implementation", cloudCo.ID, janeSmith.ID),
			activity(activitydomain.TypeMeeting, "Contract signing meeting for e-commerce upgrade", retailPlus.ID, bobWilson.ID),
		}
		for i := range activities {
			if err := tx.Create(&activities[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
