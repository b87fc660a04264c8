package company

import (
	"github.com/brightsales/atlas/internal/company/repository"
	"github.com/brightsales/atlas/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
