package domain

import (
	"context"
	"errors"

	"github.com/brightsales/atlas/pkg/db/listing"
)

type ListContactRequest struct {
	listing.Page
	Search    string
	Role      string
	CompanyID int64
}

type CreateContactRequest struct {
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Role         string
	ExternalID   string
	CustomFields map[string]any
	CompanyID    int64
}

// UpdateContactRequest is a partial payload; nil fields are left untouched.
type UpdateContactRequest struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Phone        *string
	Role         *string
	ExternalID   *string
	CustomFields map[string]any
	CompanyID    *int64
}

type Service interface {
	List(ctx context.Context, req ListContactRequest) (listing.Result[Contact], error)
	GetByID(ctx context.Context, id int64) (*Contact, error)
	Create(ctx context.Context, req CreateContactRequest) (Contact, error)
	Update(ctx context.Context, id int64, req UpdateContactRequest) (Contact, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context, ids []int64) (int64, error)
	BulkUpdate(ctx context.Context, ids []int64, req UpdateContactRequest) (int64, error)
}

var (
	ErrInvalidFirstName = errors.New("invalid_first_name")
	ErrInvalidLastName  = errors.New("invalid_last_name")
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidID        = errors.New("invalid_id")
	ErrEmptyUpdate      = errors.New("empty_update")
	ErrEmptyIDSet       = errors.New("empty_id_set")
	ErrNotFound         = errors.New("not_found")
)
