package campaign

import (
	"github.com/rifasolidaria/rifa/internal/campaign/repository"
	"github.com/rifasolidaria/rifa/internal/campaign/service"
	"go.uber.org/fx"
)

var Module = fx.Module("campaign.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
