package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Status values an opportunity moves through.
const (
	StatusProspect    = "prospect"
	StatusQualified   = "qualified"
	StatusProposal    = "proposal"
	StatusNegotiation = "negotiation"
	StatusClosedWon   = "closed-won"
	StatusClosedLost  = "closed-lost"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusProspect, StatusQualified, StatusProposal, StatusNegotiation, StatusClosedWon, StatusClosedLost:
		return true
	default:
		return false
	}
}

type Opportunity struct {
	ID           int64             `gorm:"primaryKey" json:"id"`
	Title        string            `gorm:"not null" json:"title"`
	Amount       *float64          `json:"amount,omitempty"`
	Status       string            `gorm:"not null;default:prospect" json:"status"`
	CloseDate    *time.Time        `json:"closeDate,omitempty"`
	ExternalID   string            `gorm:"column:external_id" json:"externalId,omitempty"`
	CustomFields datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"customFields,omitempty"`
	CompanyID    int64             `gorm:"not null;index" json:"companyId"`
	ContactID    *int64            `gorm:"index" json:"contactId,omitempty"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updatedAt"`

	Company *CompanySummary `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Contact *ContactSummary `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
}

type CompanySummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
}

func (CompanySummary) TableName() string { return "companies" }

type ContactSummary struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

func (ContactSummary) TableName() string { return "contacts" }
