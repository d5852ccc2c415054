//go:build wireinject
// +build wireinject

package main

//go:generate go run -mod=mod github.com/google/wire/cmd/wire

import (
	"github.com/flyingCloudRain/tradeview-sub001/internal/api"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/commonrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/infra/persistence/executionrepo"
	"github.com/flyingCloudRain/tradeview-sub001/internal/provider"
	"github.com/flyingCloudRain/tradeview-sub001/internal/scheduler"
	"github.com/flyingCloudRain/tradeview-sub001/internal/service"
	"github.com/flyingCloudRain/tradeview-sub001/internal/syncjob"
	"github.com/flyingCloudRain/tradeview-sub001/pkg/config"
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitializeApp(logger *zap.Logger, cfg config.Config, db *gorm.DB) (*App, error) {
	wire.Build(
		NewApp,

		wire.Bind(new(commonrepo.DB), new(*gorm.DB)),

		ProvideRedisClient,
		provider.NewClient,

		// http api providers
		api.Provider,
		service.Provider,

		// scheduler providers
		scheduler.Provider,
		syncjob.Provider,

		// infra providers
		executionrepo.Provider,
	)
	return nil, nil
}
