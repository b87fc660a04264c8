package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/brightsales/atlas/internal/activity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"type":       "type",
	"occurredAt": "occurred_at",
	"createdAt":  "created_at",
	"updatedAt":  "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Activity, error) {
	var activity domain.Activity
	err := db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		Preload("Opportunity").
		First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListActivityFilter, page listing.Page) (listing.Result[domain.Activity], error) {
	query := listing.Query{
		Search:        strings.TrimSpace(filter.Search),
		SearchColumns: []string{"details"},
		SortColumns:   sortColumns,
		DefaultSort:   "occurred_at",
	}
	if activityType := strings.TrimSpace(filter.Type); activityType != "" {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "type", Value: activityType})
	}
	if filter.CompanyID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "company_id", Value: filter.CompanyID})
	}
	if filter.ContactID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "contact_id", Value: filter.ContactID})
	}
	if filter.OpportunityID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "opportunity_id", Value: filter.OpportunityID})
	}
	if filter.StartDate != nil || filter.EndDate != nil {
		rng := listing.Range{Column: "occurred_at"}
		if filter.StartDate != nil {
			rng.Min = *filter.StartDate
		}
		if filter.EndDate != nil {
			rng.Max = *filter.EndDate
		}
		query.Ranges = append(query.Ranges, rng)
	}
	return listing.Find[domain.Activity](ctx, db, query, page, "Company", "Contact", "Opportunity")
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Activity{}).Count(&count).Error
	return count, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Activity{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Activity{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repo) DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Activity{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (r *repo) UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Activity{}).Where("id IN ?", ids).Updates(values)
	return result.RowsAffected, result.Error
}
