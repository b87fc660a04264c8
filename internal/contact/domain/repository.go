package domain

import (
	"context"

	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

type ListContactFilter struct {
	Search    string
	Role      string
	CompanyID int64
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, contact *Contact) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Contact, error)
	Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error)
	List(ctx context.Context, db *gorm.DB, filter ListContactFilter, page listing.Page) (listing.Result[Contact], error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error)
	UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error)
}
