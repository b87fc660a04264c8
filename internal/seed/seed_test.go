package seed

import (
	"fmt"
	"testing"

	activitydomain "github.com/brightsales/atlas/internal/activity/domain"
	authdomain "github.com/brightsales/atlas/internal/auth/domain"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:seed_%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	if err := db.AutoMigrate(
		&authdomain.User{},
		&companydomain.Company{},
		&contactdomain.Contact{},
		&opportunitydomain.Opportunity{},
		&activitydomain.Activity{},
	); err != nil {
		t.Fatal(err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatal(err)
	}
	return db, node
}

func TestEnsureAdminUser_Idempotent(t *testing.T) {
	db, node := setupDB(t)

	assert.NoError(t, EnsureAdminUser(db, node))
	assert.NoError(t, EnsureAdminUser(db, node))

	var count int64
	assert.NoError(t, db.Model(&authdomain.User{}).Where("email = ?", defaultAdminEmail).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSampleData_SkipsWhenCompaniesExist(t *testing.T) {
	db, node := setupDB(t)

	assert.NoError(t, EnsureSampleData(db, node))

	var companies, opportunities int64
	assert.NoError(t, db.Model(&companydomain.Company{}).Count(&companies).Error)
	assert.NoError(t, db.Model(&opportunitydomain.Opportunity{}).Count(&opportunities).Error)
	assert.Equal(t, int64(3), companies)
	assert.Equal(t, int64(3), opportunities)

	// re-running against an already seeded database changes nothing
	assert.NoError(t, EnsureSampleData(db, node))
	assert.NoError(t, db.Model(&companydomain.Company{}).Count(&companies).Error)
	assert.Equal(t, int64(3), companies)
}
