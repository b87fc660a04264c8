package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Company struct {
	ID           int64             `gorm:"primaryKey" json:"id"`
	Name         string            `gorm:"not null" json:"name"`
	Industry     string            `json:"industry,omitempty"`
	Website      string            `json:"website,omitempty"`
	ExternalID   string            `gorm:"column:external_id" json:"externalId,omitempty"`
	CustomFields datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"customFields,omitempty"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updatedAt"`

	Contacts      []ContactSummary     `gorm:"foreignKey:CompanyID" json:"contacts,omitempty"`
	Opportunities []OpportunitySummary `gorm:"foreignKey:CompanyID" json:"opportunities,omitempty"`
	Activities    []ActivitySummary    `gorm:"foreignKey:CompanyID" json:"activities,omitempty"`
}

// ContactSummary is the fixed nested selection of a related contact.
type ContactSummary struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email,omitempty"`
}

func (ContactSummary) TableName() string { return "contacts" }

type OpportunitySummary struct {
	ID        int64    `json:"id"`
	CompanyID int64    `json:"-"`
	Title     string   `json:"title"`
	Status    string   `json:"status"`
	Amount    *float64 `json:"amount,omitempty"`
}

func (OpportunitySummary) TableName() string { return "opportunities" }

type ActivitySummary struct {
	ID         int64     `json:"id"`
	CompanyID  int64     `json:"-"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
}

func (ActivitySummary) TableName() string { return "activities" }
