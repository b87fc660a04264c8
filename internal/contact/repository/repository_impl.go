package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/pkg/db/listing"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, contact *domain.Contact) error {
	return db.WithContext(ctx).Create(contact).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Contact, error) {
	var contact domain.Contact
	err := db.WithContext(ctx).
		Preload("Company").
		First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contact, nil
}

func (r *repo) Exists(ctx context.Context, db *gorm.DB, id int64) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Contact{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Contact{}).Count(&count).Error
	return count, err
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListContactFilter, page listing.Page) (listing.Result[domain.Contact], error) {
	query := listing.Query{
		Search:        strings.TrimSpace(filter.Search),
		SearchColumns: []string{"first_name", "last_name", "email"},
		SortColumns:   sortColumns,
		DefaultSort:   "created_at",
	}
	if role := strings.TrimSpace(filter.Role); role != "" {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "role", Value: role})
	}
	if filter.CompanyID != 0 {
		query.Conditions = append(query.Conditions, listing.Condition{Column: "company_id", Value: filter.CompanyID})
	}
	return listing.Find[domain.Contact](ctx, db, query, page, "Company")
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, id int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Contact{}).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Contact{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repo) DeleteMany(ctx context.Context, db *gorm.DB, ids []int64) (int64, error) {
	result := db.WithContext(ctx).Delete(&domain.Contact{}, "id IN ?", ids)
	return result.RowsAffected, result.Error
}

func (r *repo) UpdateMany(ctx context.Context, db *gorm.DB, ids []int64, values map[string]any) (int64, error) {
	result := db.WithContext(ctx).Model(&domain.Contact{}).Where("id IN ?", ids).Updates(values)
	return result.RowsAffected, result.Error
}
