package opportunity

import (
	"github.com/brightsales/atlas/internal/opportunity/repository"
	"github.com/brightsales/atlas/internal/opportunity/service"
	"go.uber.org/fx"
)

var Module = fx.Module("opportunity.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
