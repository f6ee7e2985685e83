package main

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"

	internalaws "github.com/imrishuroy/go-cart-engine/internal/aws"
)

// mockCloudWatch records PutMetricData calls.
type mockCloudWatch struct {
	calls []*cloudwatch.PutMetricDataInput
}

func (m *mockCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	m.calls = append(m.calls, params)
	return &cloudwatch.PutMetricDataOutput{}, nil
}

func newTestProcessor(cw internalaws.CloudWatchAPI) *Processor {
	return &Processor{metrics: internalaws.NewMetricsRecorder(cw, "CartEngine/Test")}
}

func TestProcessor_RecordsOrderMetrics(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(cw)

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `{"order_id":"o-1","cart_id":"c-1","total":"48.00"}`},
		},
	}
	if err := p.Handle(context.Background(), ev); err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	if len(cw.calls) != 1 {
		t.Fatalf("expected 1 PutMetricData call, got %d", len(cw.calls))
	}
	data := cw.calls[0].MetricData
	if len(data) != 2 {
		t.Fatalf("expected 2 metric datums, got %d", len(data))
	}
	if *data[0].MetricName != "OrdersPlaced" || *data[0].Value != 1 {
		t.Fatalf("unexpected first datum: %s=%v", *data[0].MetricName, *data[0].Value)
	}
	if *data[1].MetricName != "OrderValue" || *data[1].Value != 48.00 {
		t.Fatalf("unexpected second datum: %s=%v", *data[1].MetricName, *data[1].Value)
	}
}

func TestProcessor_BadTotalStillCounts(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(cw)

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `{"order_id":"o-1","cart_id":"c-1","total":"forty-eight"}`},
		},
	}
	if err := p.Handle(context.Background(), ev); err != nil {
		t.Fatalf("Handle error: %v", err)
	}
	if len(cw.calls) != 1 {
		t.Fatalf("expected PutMetricData despite bad total, got %d calls", len(cw.calls))
	}
}

func TestProcessor_InvalidBody(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(cw)

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `not json`},
		},
	}
	if err := p.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected error for invalid body, got nil")
	}
	if len(cw.calls) != 0 {
		t.Fatalf("expected no metrics for invalid body, got %d calls", len(cw.calls))
	}
}

func TestProcessor_MissingOrderID(t *testing.T) {
	cw := &mockCloudWatch{}
	p := newTestProcessor(cw)

	ev := events.SQSEvent{
		Records: []events.SQSMessage{
			{Body: `{"cart_id":"c-1","total":"48.00"}`},
		},
	}
	if err := p.Handle(context.Background(), ev); err == nil {
		t.Fatal("expected error for missing order_id, got nil")
	}
}
