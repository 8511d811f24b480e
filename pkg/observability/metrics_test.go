package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCloudWatch struct {
	inputs []*cloudwatch.PutMetricDataInput
	err    error
}

func (f *fakeCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	f.inputs = append(f.inputs, params)
	return &cloudwatch.PutMetricDataOutput{}, f.err
}

func TestMetrics_RecordSeedRun(t *testing.T) {
	client := &fakeCloudWatch{}
	m := NewMetrics("ClutchDemo/test", client, zap.NewNop())

	m.RecordSeedRun(context.Background(), 5, 27, 1500*time.Millisecond, nil)

	require.Len(t, client.inputs, 1)
	in := client.inputs[0]
	assert.Equal(t, "ClutchDemo/test", aws.ToString(in.Namespace))

	values := map[string]float64{}
	for _, d := range in.MetricData {
		values[aws.ToString(d.MetricName)] = aws.ToFloat64(d.Value)
		require.Len(t, d.Dimensions, 1)
		assert.Equal(t, "success", aws.ToString(d.Dimensions[0].Value))
	}
	assert.Equal(t, 5.0, values["ClutchesSeeded"])
	assert.Equal(t, 27.0, values["EggsSeeded"])
	assert.Equal(t, 1500.0, values["SeedDuration"])
}

func TestMetrics_FailureStatus(t *testing.T) {
	client := &fakeCloudWatch{}
	m := NewMetrics("ClutchDemo/test", client, zap.NewNop())

	m.RecordSeedRun(context.Background(), 0, 0, time.Second, errors.New("boom"))

	require.Len(t, client.inputs, 1)
	assert.Equal(t, "failure", aws.ToString(client.inputs[0].MetricData[0].Dimensions[0].Value))
}

func TestMetrics_PutFailureIsSwallowed(t *testing.T) {
	client := &fakeCloudWatch{err: errors.New("access denied")}
	m := NewMetrics("ClutchDemo/test", client, zap.NewNop())

	assert.NotPanics(t, func() {
		m.RecordConsolidation(context.Background(), 6, 5)
	})
	assert.Len(t, client.inputs, 1)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordSeedRun(context.Background(), 1, 1, time.Second, nil)
	})

	unconfigured := NewMetrics("ClutchDemo/test", nil, zap.NewNop())
	assert.NotPanics(t, func() {
		unconfigured.RecordConsolidation(context.Background(), 1, 1)
	})
}
