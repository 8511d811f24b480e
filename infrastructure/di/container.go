package di

import (
	"io"

	"clutchdemo/application/generator"
	"clutchdemo/application/ports"
	"clutchdemo/application/services"
	"clutchdemo/infrastructure/config"
	"clutchdemo/infrastructure/persistence/schema"
	pkgerrors "clutchdemo/pkg/errors"
	"clutchdemo/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config               *config.Config
	Logger               *zap.Logger
	Tracer               *observability.Tracer
	Metrics              *observability.Metrics
	RecordStore          ports.RecordStore
	Provisioner          *schema.Provisioner
	ClutchRepo           ports.ClutchRepository
	Publisher            ports.EventPublisher
	ErrorHandler         *pkgerrors.ErrorHandler
	QueryService         *services.ClutchQueryService
	ConsolidationService *services.ConsolidationService
}

// GeneratorOptions maps the seeding configuration onto generator options
func GeneratorOptions(cfg *config.Config) generator.Options {
	return generator.Options{
		Clutches: cfg.ClutchCount,
		MinEggs:  cfg.MinEggsPerClutch,
		MaxEggs:  cfg.MaxEggsPerClutch,
		Seed:     cfg.Seed,
	}
}

// PopulateService builds the seeding service writing progress to out.
// Publishing and metrics follow the configuration.
func (c *Container) PopulateService(gen services.RecordGenerator, out io.Writer) *services.PopulateService {
	opts := []services.PopulateOption{
		services.WithTracer(c.Tracer),
		services.WithTableName(c.Config.DynamoDBTable),
		services.WithMetrics(c.Metrics),
	}
	if c.Publisher != nil {
		opts = append(opts, services.WithPublisher(c.Publisher))
	}
	return services.NewPopulateService(gen, c.RecordStore, out, c.Logger, opts...)
}

// Close flushes buffered logs
func (c *Container) Close() {
	_ = c.Logger.Sync()
}
