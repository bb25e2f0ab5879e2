package pix

import (
	"github.com/rifasolidaria/rifa/internal/config"
	"github.com/rifasolidaria/rifa/internal/pix/domain"
	"github.com/rifasolidaria/rifa/internal/pix/hypercash"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("pix.gateway",
	fx.Provide(provideGateway),
)

func provideGateway(cfg config.Config, log *zap.Logger) domain.Gateway {
	if cfg.HyperCashAPIKey == "" {
		log.Warn("HYPERCASH_API_KEY not configured, PIX payments will not work")
	}
	return hypercash.New(hypercash.Config{
		BaseURL: cfg.HyperCashBaseURL,
		APIKey:  cfg.HyperCashAPIKey,
	}, log)
}
