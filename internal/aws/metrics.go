package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

// MetricsRecorder publishes order metrics to a CloudWatch namespace.
type MetricsRecorder struct {
	CloudWatch CloudWatchAPI
	Namespace  string
	nowFunc    func() time.Time
}

// NewMetricsRecorder returns a recorder bound to a namespace.
func NewMetricsRecorder(cw CloudWatchAPI, namespace string) *MetricsRecorder {
	return &MetricsRecorder{
		CloudWatch: cw,
		Namespace:  namespace,
		nowFunc:    time.Now,
	}
}

// RecordOrderPlaced emits OrdersPlaced (count) and OrderValue (total in currency units)
// for a single processed order.
func (m *MetricsRecorder) RecordOrderPlaced(ctx context.Context, orderValue float64) error {
	now := m.nowFunc()
	input := &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: awsString("OrdersPlaced"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitCount,
				Value:      awsFloat(1),
			},
			{
				MetricName: awsString("OrderValue"),
				Timestamp:  &now,
				Unit:       cwtypes.StandardUnitNone,
				Value:      awsFloat(orderValue),
			},
		},
	}
	if _, err := m.CloudWatch.PutMetricData(ctx, input); err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func awsFloat(f float64) *float64 { return &f }
