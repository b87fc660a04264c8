package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"title":     "title",
	"amount":    "amount",
	"status":    "status",
	"closeDate": "close_date",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, opportunity *domain.Opportunity) error {
	return db.WithContext(ctx).Create(opportunity).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Opportunity, error) {
	var opportunity domain.Opportunity
	err := db.WithContext(ctx).
		Preload("Company").
		Preload("Contact").
		First(&opportunity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &opportunity, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Opportunity{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Opportunity{}).Count(&count).Error
	return count, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListOpportunityFilter, page listing.Page) (listing.Result[domain.Opportunity], error) {
	query := listing.Query{
		Search:        strings.TrimSpace(filter.Search),
		SearchColumns: []string{"title"},
		SortColumns:   sortColumns,
		DefaultSort:   "created_at",
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "status", Value: status})
	}
	if filter.CompanyID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "company_id", Value: filter.CompanyID})
	}
	if filter.ContactID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "contact_id", Value: filter.ContactID})
	}
	if filter.MinAmount != nil || filter.MaxAmount != nil {
		rng := listing.Range{Column: "amount"}
		if filter.MinAmount != nil {
			rng.Min = *filter.MinAmount
		}
		if filter.MaxAmount != nil {
			rng.Max = *filter.MaxAmount
		}
		query.Ranges = append(query.Ranges, rng)
	}
	return listing.Find[domain.Opportunity](ctx, db, query, page, "Company", "Contact")
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Opportunity{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Opportunity{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repo) DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Opportunity{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (r *repo) UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Opportunity{}).Where("id IN ?", ids).Updates(values)
	return result.RowsAffected, result.Error
}

// SumOpenAmount totals the amount of opportunities that are not closed.
func (r *repo) SumOpenAmount(ctx context.Context, db *gorm.DB) (float64, error) {
	var total *float64
	err := db.WithContext(ctx).
		Model(&domain.Opportunity{}).
		Select("SUM(amount)").
		Where("status NOT IN ?", []string{domain.StatusClosedWon, domain.StatusClosedLost}).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
