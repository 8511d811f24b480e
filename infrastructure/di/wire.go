//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"clutchdemo/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideRecordStore,
	ProvideTableProvisioner,
	ProvideClutchRepository,
	ProvideEventPublisher,
	ProvideMetrics,
	ProvideMetricsRecorder,
	ProvideErrorHandler,
	ProvideClutchQueryService,
	ProvideConsolidationService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
