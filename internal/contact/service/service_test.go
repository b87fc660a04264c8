package service

import (
	"context"
	"fmt"
	"testing"

	companydomain "github.com/brightsales/atlas/internal/company/domain"
	companyrepository "github.com/brightsales/atlas/internal/company/repository"
	"github.com/brightsales/atlas/internal/contact/domain"
	"github.com/brightsales/atlas/internal/contact/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc  domain.Service
	db   *gorm.DB
	node *snowflake.Node
}

func setupFixture(t *testing.T) fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:contact_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(&companydomain.Company{}, &domain.Contact{}); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}

	svc := New(Params{
		DB:          db,
		Log:         zap.NewNop(),
		GenID:       node,
		Repo:        repository.Provide(),
		CompanyRepo: companyrepository.Provide(),
	})
	companyNode, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatal(err)
	}
	return fixture{svc: svc, db: db, node: companyNode}
}

func (f fixture) createCompany(t *testing.T, name string) companydomain.Company {
	t.Helper()

	company := companydomain.Company{ID: f.node.Generate().Int64(), Name: name}
	if err := f.db.Create(&company).Error; err != nil {
		t.Fatal(err)
	}
	return company
}

func TestCreate_Validation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")

	_, err := f.svc.Create(ctx, domain.CreateContactRequest{LastName: "Doe", CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidFirstName)

	_, err = f.svc.Create(ctx, domain.CreateContactRequest{FirstName: "Jane", CompanyID: company.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidLastName)

	_, err = f.svc.Create(ctx, domain.CreateContactRequest{FirstName: "Jane", LastName: "Doe", CompanyID: 313131})
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}

func TestCreate_LinksCompany(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	company := f.createCompany(t, "Acme")

	created, err := f.svc.Create(ctx, domain.CreateContactRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@acme.example",
		Role:      "CTO",
		CompanyID: company.ID,
	})
	assert.NoError(t, err)

	fetched, err := f.svc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, company.ID, fetched.CompanyID)
	if assert.NotNil(t, fetched.Company) {
		assert.Equal(t, "Acme", fetched.Company.Name)
	}
}

func TestUpdate_CompanyReferenceChecked(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	acme := f.createCompany(t, "Acme")
	globex := f.createCompany(t, "Globex")

	created, err := f.svc.Create(ctx, domain.CreateContactRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		CompanyID: acme.ID,
	})
	assert.NoError(t, err)

	badID := int64(525252)
	_, err = f.svc.Update(ctx, created.ID, domain.UpdateContactRequest{CompanyID: &badID})
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)

	updated, err := f.svc.Update(ctx, created.ID, domain.UpdateContactRequest{CompanyID: &globex.ID})
	assert.NoError(t, err)
	assert.Equal(t, globex.ID, updated.CompanyID)
}

func TestList_FilterByCompany(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	acme := f.createCompany(t, "Acme")
	globex := f.createCompany(t, "Globex")

	for _, c := range []domain.CreateContactRequest{
		{FirstName: "Jane", LastName: "Doe", Role: "CTO", CompanyID: acme.ID},
		{FirstName: "John", LastName: "Smith", Role: "CEO", CompanyID: acme.ID},
		{FirstName: "Ada", LastName: "King", Role: "CTO", CompanyID: globex.ID},
	} {
		_, err := f.svc.Create(ctx, c)
		assert.NoError(t, err)
	}

	acmeOnly, err := f.svc.List(ctx, domain.ListContactRequest{CompanyID: acme.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(2), acmeOnly.Pagination.Total)

	ctos, err := f.svc.List(ctx, domain.ListContactRequest{CompanyID: acme.ID, Role: "CTO"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), ctos.Pagination.Total)
	assert.Equal(t, "Jane", ctos.Data[0].FirstName)

	search, err := f.svc.List(ctx, domain.ListContactRequest{Search: "smith"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), search.Pagination.Total)
}
