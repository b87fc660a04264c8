package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	companyrepository "github.com/brightsales/atlas/internal/company/repository"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	contactrepository "github.com/brightsales/atlas/internal/contact/repository"
	"github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/internal/opportunity/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	repo domain.Repository
	db   *gorm.DB
	node *snowflake.Node
}

func setupFixture(t *testing.T) fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:opportunity_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&companydomain.Company{}, &contactdomain.Contact{}, &domain.Opportunity{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	repo := repository.Provide()
	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repo,
		CompanyRepo: companyrepository.Provide(),
		ContactRepo: contactrepository.Provide(),
	})
	return fixture{svc: svc, repo: repo, db: db, node: node}
}

func (f fixture) createCompany(t *testing.T, name string) companydomain.Company {
	t.Helper()

	company := companydomain.Company{ID: f.node.Generate().Int64(), Name: name}
	if err := f.db.Create(&company).Error; err != nil {
		t.Fatal(err)
	}
	return company
}

func (f fixture) createContact(t *testing.T, companyID int64) contactdomain.Contact {
	t.Helper()

	contact := contactdomain.Contact{
		ID:        f.node.Generate().Int64(),
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: companyID,
	}
	if err := f.db.Create(&contact).Error; err != nil {
		t.Fatal(err)
	}
	return contact
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")

	_, err := f.svc.Create(ctx, domain.CreateOpportunityRequest{CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)

	_, err = f.svc.Create(ctx, domain.CreateOpportunityRequest{
		Title:     "Renewal",
		Status:    "imaginary",
		CompanyID: company.ID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.svc.Create(ctx, domain.CreateOpportunityRequest{Title: "Renewal", CompanyID: 919191})
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)

	badContact := int64(828282)
	_, err = f.svc.Create(ctx, domain.CreateOpportunityRequest{
		Title:     "Renewal",
		CompanyID: company.ID,
		ContactID: &badContact,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidContact)

	created, err := f.svc.Create(ctx, domain.CreateOpportunityRequest{Title: "Renewal", CompanyID: company.ID})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusProspect, created.Status)
	assert.Nil(t, created.CloseDate)
	assert.Nil(t, created.Amount)
}

func TestUpdate_StatusAndContact(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")
	contact := f.createContact(t, company.ID)

	created, err := f.svc.Create(ctx, domain.CreateOpportunityRequest{Title: "Renewal", CompanyID: company.ID})
	assert.NoError(t, err)

	status := domain.StatusClosedWon
	amount := 75000.0
	closeDate := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateOpportunityRequest{
		Status:    &status,
		Amount:    &amount,
		CloseDate: &closeDate,
		ContactID: &contact.ID,
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusClosedWon, updated.Status)
	assert.Equal(t, 75000.0, *updated.Amount)
	if assert.NotNil(t, updated.Contact) {
		assert.Equal(t, "Jane", updated.Contact.FirstName)
	}

	bad := "pending"
	_, err = f.svc.Update(ctx, created.ID, domain.UpdateOpportunityRequest{Status: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestList_AmountRange(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")

	for _, amount := range []float64{10000, 50000, 90000} {
		a := amount
		_, err := f.svc.Create(ctx, domain.CreateOpportunityRequest{
			Title:     fmt.Sprintf("Deal %v", amount),
			Amount:    &a,
			CompanyID: company.ID,
		})
		assert.NoError(t, err)
	}

	min := 20000.0
	max := 80000.0
	result, err := f.svc.List(ctx, domain.ListOpportunityRequest{MinAmount: &min, MaxAmount: &max})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.Pagination.Total)
	assert.Equal(t, 50000.0, *result.Data[0].Amount)

	all, err := f.svc.List(ctx, domain.ListOpportunityRequest{})
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, all.Pagination.Total, result.Pagination.Total)
}

func TestSumOpenAmount_ExcludesClosed(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")

	create := func(title, status string, amount float64) {
		a := amount
		_, err := f.svc.Create(ctx, domain.CreateOpportunityRequest{
			Title:     title,
			Status:    status,
			Amount:    &a,
			CompanyID: company.ID,
		})
		assert.NoError(t, err)
	}

	create("Open A", domain.StatusProspect, 10000)
	create("Open B", domain.StatusNegotiation, 25000)
	create("Won", domain.StatusClosedWon, 50000)
	create("Lost", domain.StatusClosedLost, 5000)

	total, err := f.repo.SumOpenAmount(ctx, f.db)
	assert.NoError(t, err)
	assert.Equal(t, 35000.0, total)
}
