package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/config"
	"github.com/rifasolidaria/rifa/internal/migration"
	"github.com/rifasolidaria/rifa/internal/observability"
	"github.com/rifasolidaria/rifa/internal/server"
	"github.com/rifasolidaria/rifa/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// HTTP surface plus the domain modules it serves
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
