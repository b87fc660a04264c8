package domain

import (
	"context"
	"errors"
	"time"

	"github.com/brightsales/atlas/pkg/db/listing"
)

type ListActivityRequest struct {
	listing.Page
	Search        string
	Type          string
	CompanyID     int64
	ContactID     int64
	OpportunityID int64
	StartDate     *time.Time
	EndDate       *time.Time
}

type CreateActivityRequest struct {
	Type          string
	Details       string
	OccurredAt    *time.Time
	CustomFields  map[string]any
	CompanyID     int64
	ContactID     *int64
	OpportunityID *int64
}

// UpdateActivityRequest is a partial payload; nil fields are left untouched.
type UpdateActivityRequest struct {
	Type          *string
	Details       *string
	OccurredAt    *time.Time
	CustomFields  map[string]any
	CompanyID     *int64
	ContactID     *int64
	OpportunityID *int64
}

type Service interface {
	List(ctx context.Context, req ListActivityRequest) (listing.Result[Activity], error)
	GetByID(ctx context.Context, id int64) (*Activity, error)
	Create(ctx context.Context, req CreateActivityRequest) (Activity, error)
	Update(ctx context.Context, id int64, req UpdateActivityRequest) (Activity, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	BulkUpdate(ctx context.Context, ids []int64, req UpdateActivityRequest) (int64, error)
}

var (
	ErrInvalidType        = errors.New("invalid_type")
	ErrInvalidCompany     = errors.New("invalid_company")
	ErrInvalidContact     = errors.New("invalid_contact")
	ErrInvalidOpportunity = errors.New("invalid_opportunity")
	ErrInvalidID          = errors.New("invalid_id")
	ErrEmptyUpdate        = errors.New("empty_update")
	ErrEmptyIDSet         = errors.New("empty_id_set")
	ErrNotFound           = errors.New("not_found")
)
