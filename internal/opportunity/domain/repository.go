package domain

import (
	"context"

	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

type ListOpportunityFilter struct {
	Search    string
	Status    string
	CompanyID int64
	ContactID int64
	MinAmount *float64
	MaxAmount *float64
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, opportunity *Opportunity) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Opportunity, error)
	Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListOpportunityFilter, page listing.Page) (listing.Result[Opportunity], error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error)
	UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error)
	SumOpenAmount(ctx context.Context, db *gorm.DB) (float64, error)
}
