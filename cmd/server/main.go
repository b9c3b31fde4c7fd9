package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/fintechlab/bankapi/infra"
	infrarepo "github.com/fintechlab/bankapi/infra/repository"
	"github.com/fintechlab/bankapi/pkg/config"
	"github.com/fintechlab/bankapi/pkg/eventbus"
	accountsvc "github.com/fintechlab/bankapi/pkg/service/account"
	cardsvc "github.com/fintechlab/bankapi/pkg/service/card"
	holdersvc "github.com/fintechlab/bankapi/pkg/service/holder"
	transfersvc "github.com/fintechlab/bankapi/pkg/service/transfer"
	"github.com/fintechlab/bankapi/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(nil)
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := infra.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := infra.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infrarepo.NewUoW(db)
	bus := eventbus.NewMemoryBus(logger)

	services := webapi.Services{
		Account:  accountsvc.NewService(uow, bus, logger),
		Card:     cardsvc.NewService(uow, bus, logger),
		Holder:   holdersvc.NewService(uow, bus, nil, logger),
		Transfer: transfersvc.NewService(uow, bus, logger),
	}

	app := webapi.NewApp(cfg, services)

	logger.Info("starting server", "env", cfg.Env, "address", cfg.Server.Address)
	return app.Listen(cfg.Server.Address)
}
