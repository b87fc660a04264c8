package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/internal/company/repository"
	"github.com/brightsales/atlas/pkg/db/listing"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupService(t *testing.T) domain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:company_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(
		&domain.Company{},
		&domain.ContactSummary{},
		&domain.OpportunitySummary{},
		&domain.ActivitySummary{},
	); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestCreate_RequiresName(t *testing.T) {
	svc := setupService(t)

	_, err := svc.Create(context.Background(), domain.CreateCompanyRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestCreate_GetByID_RoundTrip(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{
		Name:         "  Acme Corp  ",
		Industry:     "Manufacturing",
		Website:      "https://acme.example",
		CustomFields: map[string]any{"tier": "gold"},
	})
	assert.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Acme Corp", created.Name)

	fetched, err := svc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Manufacturing", fetched.Industry)
	assert.Equal(t, "gold", fetched.CustomFields["tier"])
}

func TestGetByID_NotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.GetByID(context.Background(), 424242)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_Partial(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Acme", Industry: "Manufacturing"})
	assert.NoError(t, err)

	industry := "Logistics"
	updated, err := svc.Update(ctx, created.ID, domain.UpdateCompanyRequest{Industry: &industry})
	assert.NoError(t, err)
	assert.Equal(t, "Acme", updated.Name)
	assert.Equal(t, "Logistics", updated.Industry)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))
}

func TestUpdate_Missing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	name := "Ghost"
	_, err := svc.Update(ctx, 999999, domain.UpdateCompanyRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Acme"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, domain.UpdateCompanyRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestDelete(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Acme"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestBulkOps_PartialIDs(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Alpha"})
	assert.NoError(t, err)
	b, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Beta"})
	assert.NoError(t, err)

	industry := "SaaS"
	count, err := svc.BulkUpdate(ctx, []int64{a.ID, b.ID, 777777}, domain.UpdateCompanyRequest{Industry: &industry})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = svc.BulkDelete(ctx, []int64{b.ID, 777777})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = svc.BulkDelete(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrEmptyIDSet)
}

func TestList_SearchAndFilter(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	for _, c := range []domain.CreateCompanyRequest{
		{Name: "Acme Manufacturing", Industry: "Manufacturing"},
		{Name: "Acme Logistics", Industry: "Logistics"},
		{Name: "Globex", Industry: "Manufacturing"},
	} {
		_, err := svc.Create(ctx, c)
		assert.NoError(t, err)
	}

	all, err := svc.List(ctx, domain.ListCompanyRequest{})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), all.Pagination.Total)

	acme, err := svc.List(ctx, domain.ListCompanyRequest{Search: "acme"})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), acme.Pagination.Total)

	both, err := svc.List(ctx, domain.ListCompanyRequest{Search: "acme", Industry: "Manufacturing"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), both.Pagination.Total)
	assert.LessOrEqual(t, both.Pagination.Total, acme.Pagination.Total)

	page, err := svc.List(ctx, domain.ListCompanyRequest{Page: listing.Page{Limit: 2}})
	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.Pagination.Pages)
}
