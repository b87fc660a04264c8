package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Contact struct {
	ID           int64             `gorm:"primaryKey" json:"id"`
	FirstName    string            `gorm:"not null" json:"firstName"`
	LastName     string            `gorm:"not null" json:"lastName"`
	Email        string            `json:"email,omitempty"`
	Phone        string            `json:"phone,omitempty"`
	Role         string            `json:"role,omitempty"`
	ExternalID   string            `gorm:"column:external_id" json:"externalId,omitempty"`
	CustomFields datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"customFields,omitempty"`
	CompanyID    int64             `gorm:"not null;index" json:"companyId"`
	CreatedAt    time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time         `gorm:"not null" json:"updatedAt"`

	Company *CompanySummary `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}

// CompanySummary is the fixed nested selection of the owning company.
type CompanySummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry,omitempty"`
}

func (CompanySummary) TableName() string { return "companies" }
