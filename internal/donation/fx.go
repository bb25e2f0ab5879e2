package donation

import (
	"github.com/rifasolidaria/rifa/internal/donation/repository"
	"github.com/rifasolidaria/rifa/internal/donation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("donation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
