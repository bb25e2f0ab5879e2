package migration

import (
	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	"github.com/rifasolidaria/rifa/internal/config"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
	"github.com/rifasolidaria/rifa/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node, campaigns campaigndomain.Service) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql deployments are local or dev only.
			if err := conn.AutoMigrate(
				&campaigndomain.Campaign{},
				&donationdomain.Donation{},
				&raffledomain.RaffleNumber{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultCampaign(conn, node, campaigns)
	}),
)
