package di

import (
	"context"
	"fmt"

	"clutchdemo/application/ports"
	"clutchdemo/application/services"
	"clutchdemo/infrastructure/config"
	"clutchdemo/infrastructure/messaging/eventbridge"
	"clutchdemo/infrastructure/persistence/dynamodb"
	"clutchdemo/infrastructure/persistence/schema"
	pkgerrors "clutchdemo/pkg/errors"
	"clutchdemo/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// serviceName names the trace segments and the logger
const serviceName = "clutchdemo"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zcfg.Level = level

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return logger.Named(serviceName), nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config, tracer *observability.Tracer) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}

	tracer.InstrumentAWS(&awsCfg)
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client. DYNAMODB_ENDPOINT points
// it at DynamoDB Local.
func ProvideDynamoDBClient(awsCfg aws.Config, cfg *config.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideRecordStore creates the batched writer used for seeding
func ProvideRecordStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.RecordStore {
	return dynamodb.NewTableWriter(client, cfg.DynamoDBTable, logger)
}

// ProvideTableProvisioner creates the table provisioner used against
// DynamoDB Local
func ProvideTableProvisioner(client *awsdynamodb.Client, logger *zap.Logger) *schema.Provisioner {
	return schema.NewProvisioner(client, logger)
}

// ProvideClutchRepository creates a clutch repository
func ProvideClutchRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ClutchRepository {
	return dynamodb.NewClutchRepository(
		client,
		cfg.DynamoDBTable,
		cfg.GSI1IndexName, // GSI1 for newest-first listing
		logger,
	)
}

// ProvideEventPublisher creates the EventBridge publisher, or nil when
// publishing is switched off
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.PublishEvents {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates metrics instance. Without ENABLE_METRICS it
// records nothing.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(cfg.MetricsNamespace, nil, logger)
	}
	return observability.NewMetrics(cfg.MetricsNamespace, client, logger)
}

// ProvideMetricsRecorder exposes metrics through the application port
func ProvideMetricsRecorder(metrics *observability.Metrics) ports.MetricsRecorder {
	return metrics
}

// ProvideErrorHandler creates the HTTP error handler. Development responses
// carry stack traces.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// ProvideClutchQueryService creates the read-side query service
func ProvideClutchQueryService(repo ports.ClutchRepository) *services.ClutchQueryService {
	return services.NewClutchQueryService(repo)
}

// ProvideConsolidationService creates the consolidation service
func ProvideConsolidationService(
	repo ports.ClutchRepository,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *services.ConsolidationService {
	return services.NewConsolidationService(repo, metrics, logger)
}
