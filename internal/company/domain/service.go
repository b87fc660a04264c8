package domain

import (
	"context"
	"errors"

	"github.com/brightsales/atlas/pkg/db/listing"
)

type ListCompanyRequest struct {
	listing.Page
	Search   string
	Industry string
}

type CreateCompanyRequest struct {
	Name         string
	Industry     string
	Website      string
	ExternalID   string
	CustomFields map[string]any
}

// UpdateCompanyRequest is a partial payload; nil fields are left untouched.
type UpdateCompanyRequest struct {
	Name         *string
	Industry     *string
	Website      *string
	ExternalID   *string
	CustomFields map[string]any
}

type Service interface {
	List(ctx context.Context, req ListCompanyRequest) (listing.Result[Company], error)
	GetByID(ctx context.Context, id int64) (*Company, error)
	Create(ctx context.Context, req CreateCompanyRequest) (Company, error)
	Update(ctx context.Context, id int64, req UpdateCompanyRequest) (Company, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	BulkUpdate(ctx context.Context, ids []int64, req UpdateCompanyRequest) (int64, error)
}

var (
	ErrInvalidName = errors.New("invalid_name")
	ErrInvalidID   = errors.New("invalid_id")
	ErrEmptyUpdate = errors.New("empty_update")
	ErrEmptyIDSet  = errors.New("empty_id_set")
	ErrNotFound    = errors.New("not_found")
)
