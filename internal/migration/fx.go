package migration

import (
	activitydomain "github.com/brightsales/atlas/internal/activity/domain"
	aidomain "github.com/brightsales/atlas/internal/ai/domain"
	authdomain "github.com/brightsales/atlas/internal/auth/domain"
	companydomain "github.com/brightsales/atlas/internal/company/domain"
	"github.com/brightsales/atlas/internal/config"
	contactdomain "github.com/brightsales/atlas/internal/contact/domain"
	opportunitydomain "github.com/brightsales/atlas/internal/opportunity/domain"
	"github.com/brightsales/atlas/internal/seed"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql dev setups skip versioned migrations
			if err := conn.AutoMigrate(
				&companydomain.Company{},
				&contactdomain.Contact{},
				&opportunitydomain.Opportunity{},
				&activitydomain.Activity{},
				&authdomain.User{},
				&aidomain.PromptLog{},
				&aidomain.Embedding{},
			); err != nil {
				return err
			}
		}

		if err := seed.EnsureAdminUser(conn, node); err != nil {
			return err
		}
		if cfg.SeedSampleData {
			return seed.EnsureSampleData(conn, node)
		}
		return nil
	}),
)
