package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"name":      "name",
	"industry":  "industry",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Create(company).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).
		Preload("Contacts").
		Preload("Opportunities").
		Preload("Activities").
		First(&company, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Company{}).Count(&count).Error
	return count, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCompanyFilter, page listing.Page) (listing.Result[domain.Company], error) {
	query := listing.Query{
		Search:        strings.TrimSpace(filter.Search),
		SearchColumns: []string{"name", "website"},
		SortColumns:   sortColumns,
		DefaultSort:   "created_at",
	}
	if industry := strings.TrimSpace(filter.Industry); industry != "" {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "industry", Value: industry})
	}
	return listing.Find[domain.Company](ctx, db, query, page)
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Company{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Company{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repo) DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Company{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (r *repo) UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Company{}).Where("id IN ?", ids).Updates(values)
	return result.RowsAffected, result.Error
}
