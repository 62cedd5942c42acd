package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstbooks/internal/config"
	"github.com/smallbiznis/gstbooks/internal/logger"
	"github.com/smallbiznis/gstbooks/internal/migration"
	"github.com/smallbiznis/gstbooks/internal/server"
	"github.com/smallbiznis/gstbooks/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func newSnowflakeNode() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
