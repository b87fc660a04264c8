package contact

import (
	"github.com/brightsales/atlas/internal/contact/repository"
	"github.com/brightsales/atlas/internal/contact/service"
	"go.uber.org/fx"
)

var Module = fx.Module("contact.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
