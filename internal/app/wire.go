//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/flashdeck/internal/adapter/httpapi"
	adapterrepo "github.com/eslsoft/flashdeck/internal/adapter/repository"
	"github.com/eslsoft/flashdeck/internal/fsrs"
	"github.com/eslsoft/flashdeck/internal/infrastructure/config"
	"github.com/eslsoft/flashdeck/internal/infrastructure/database"
	"github.com/eslsoft/flashdeck/internal/infrastructure/server"
	"github.com/eslsoft/flashdeck/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewClient,
)

var repositorySet = wire.NewSet(
	adapterrepo.NewDeckRepository,
	adapterrepo.NewCardRepository,
	adapterrepo.NewReviewLogRepository,
)

var usecaseSet = wire.NewSet(
	fsrs.NewScheduler,
	wire.Bind(new(usecase.Oracle), new(*fsrs.Scheduler)),
	usecase.NewDeckUsecase,
	usecase.NewCardUsecase,
	usecase.NewStudyUsecase,
)

var httpSet = wire.NewSet(
	httpapi.NewDeckHandler,
	httpapi.NewCardHandler,
	httpapi.NewStudyHandler,
	httpapi.NewRouter,
	wire.Bind(new(server.Router), new(*httpapi.Router)),
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.New,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		httpSet,
		serverSet,
		wire.Struct(new(Container), "Config", "Logger", "DB", "Server"),
	)
	return nil, nil, nil
}
