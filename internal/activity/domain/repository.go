package domain

import (
	"context"
	"time"

	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

type ListActivityFilter struct {
	Search        string
	Type          string
	CompanyID     int64
	ContactID     int64
	OpportunityID int64
	StartDate     *time.Time
	EndDate       *time.Time
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, activity *Activity) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Activity, error)
	List(ctx context.Context, db *gorm.DB, filter ListActivityFilter, page listing.Page) (listing.Result[Activity], error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error)
	DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error)
	UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error)
}
