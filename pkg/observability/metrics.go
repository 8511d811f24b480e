// Package observability holds the CloudWatch metrics and X-Ray tracing
// helpers shared by the entry points.
package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// PutMetricDataAPI is the slice of the CloudWatch client Metrics needs
type PutMetricDataAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// Metrics handles application metrics and monitoring. A Metrics with no
// client records nothing.
type Metrics struct {
	namespace string
	client    PutMetricDataAPI
	logger    *zap.Logger
	now       func() time.Time
}

// NewMetrics creates a new metrics instance
func NewMetrics(namespace string, client PutMetricDataAPI, logger *zap.Logger) *Metrics {
	return &Metrics{
		namespace: namespace,
		client:    client,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordSeedRun records the outcome of one populate run
func (m *Metrics) RecordSeedRun(ctx context.Context, clutches, eggs int, duration time.Duration, err error) {
	if m == nil || m.client == nil {
		return // Skip if no client configured
	}

	status := "success"
	if err != nil {
		status = "failure"
	}
	dims := []types.Dimension{
		{Name: aws.String("Status"), Value: aws.String(status)},
	}
	at := aws.Time(m.now())

	metricData := []types.MetricDatum{
		{
			MetricName: aws.String("ClutchesSeeded"),
			Dimensions: dims,
			Value:      aws.Float64(float64(clutches)),
			Unit:       types.StandardUnitCount,
			Timestamp:  at,
		},
		{
			MetricName: aws.String("EggsSeeded"),
			Dimensions: dims,
			Value:      aws.Float64(float64(eggs)),
			Unit:       types.StandardUnitCount,
			Timestamp:  at,
		},
		{
			MetricName: aws.String("SeedDuration"),
			Dimensions: dims,
			Value:      aws.Float64(float64(duration.Milliseconds())),
			Unit:       types.StandardUnitMilliseconds,
			Timestamp:  at,
		},
	}

	m.put(ctx, metricData)
}

// RecordConsolidation records the findings of one consolidated clutch
func (m *Metrics) RecordConsolidation(ctx context.Context, total, viable int) {
	if m == nil || m.client == nil {
		return
	}

	at := aws.Time(m.now())
	m.put(ctx, []types.MetricDatum{
		{
			MetricName: aws.String("EggsConsolidated"),
			Value:      aws.Float64(float64(total)),
			Unit:       types.StandardUnitCount,
			Timestamp:  at,
		},
		{
			MetricName: aws.String("ViableEggs"),
			Value:      aws.Float64(float64(viable)),
			Unit:       types.StandardUnitCount,
			Timestamp:  at,
		},
	})
}

func (m *Metrics) put(ctx context.Context, data []types.MetricDatum) {
	input := &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}

	if _, err := m.client.PutMetricData(ctx, input); err != nil {
		// Log error but don't fail the operation
		m.logger.Warn("Failed to send metrics",
			zap.Error(err),
			zap.String("namespace", m.namespace),
		)
	}
}
