package main

import (
	"github.com/brightsales/atlas/internal/config"
	"github.com/brightsales/atlas/internal/migration"
	"github.com/brightsales/atlas/internal/observability"
	"github.com/brightsales/atlas/internal/server"
	"github.com/brightsales/atlas/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}

func registerSnowflake() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}
