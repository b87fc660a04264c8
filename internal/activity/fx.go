package activity

import (
	"github.com/brightsales/atlas/internal/activity/repository"
	"github.com/brightsales/atlas/internal/activity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("activity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
