package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Type values an activity can be recorded as.
const (
	TypeCall     = "call"
	TypeEmail    = "email"
	TypeMeeting  = "meeting"
	TypeNote     = "note"
	TypeTask     = "task"
	TypeDemo     = "demo"
	TypeFollowUp = "follow-up"
)

func ValidType(activityType string) bool {
	switch activityType {
	case TypeCall, TypeEmail, TypeMeeting, TypeNote, TypeTask, TypeDemo, TypeFollowUp:
		return true
	default:
		return false
	}
}

type Activity struct {
	ID            int64             `gorm:"primaryKey" json:"id"`
	Type          string            `gorm:"not null" json:"type"`
	Details       string            `json:"details,omitempty"`
	OccurredAt    time.Time         `gorm:"not null;index" json:"occurredAt"`
	CustomFields  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"customFields,omitempty"`
	CompanyID     int64             `gorm:"not null;index" json:"companyId"`
	ContactID     *int64            `gorm:"index" json:"contactId,omitempty"`
	OpportunityID *int64            `gorm:"index" json:"opportunityId,omitempty"`
	CreatedAt     time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time         `gorm:"not null" json:"updatedAt"`

	Company     *CompanySummary     `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Contact     *ContactSummary     `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Opportunity *OpportunitySummary `gorm:"foreignKey:OpportunityID" json:"opportunity,omitempty"`
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

type OpportunitySummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (OpportunitySummary) TableName() string { return "opportunities" }
