package domain

import (
	"context"
	"errors"
	"time"

	"github.com/brightsales/atlas/pkg/db/listing"
)

type ListOpportunityRequest struct {
	listing.Page
	Search    string
	Status    string
	CompanyID int64
	ContactID int64
	MinAmount *float64
	MaxAmount *float64
}

type CreateOpportunityRequest struct {
	Title        string
	Amount       *float64
	Status       string
	CloseDate    *time.Time
	ExternalID   string
	CustomFields map[string]any
	CompanyID    int64
	ContactID    *int64
}

// UpdateOpportunityRequest is a partial payload; nil fields are left untouched.
type UpdateOpportunityRequest struct {
	Title        *string
	Amount       *float64
	Status       *string
	CloseDate    *time.Time
	ExternalID   *string
	CustomFields map[string]any
	CompanyID    *int64
	ContactID    *int64
}

type Service interface {
	List(ctx context.Context, req ListOpportunityRequest) (listing.Result[Opportunity], error)
	GetByID(ctx context.Context, id int64) (*Opportunity, error)
	Create(ctx context.Context, req CreateOpportunityRequest) (Opportunity, error)
	Update(ctx context.Context, id int64, req UpdateOpportunityRequest) (Opportunity, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	BulkUpdate(ctx context.Context, ids []int64, req UpdateOpportunityRequest) (int64, error)
}

var (
	ErrInvalidTitle   = errors.New("invalid_title")
	ErrInvalidStatus  = errors.New("invalid_status")
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidContact = errors.New("invalid_contact")
	ErrInvalidID      = errors.New("invalid_id")
	ErrEmptyUpdate    = errors.New("empty_update")
	ErrEmptyIDSet     = errors.New("empty_id_set")
	ErrNotFound       = errors.New("not_found")
)
