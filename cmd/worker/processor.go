package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-cart-engine/internal/aws"
)

// Processor consumes order-placed events. Order placement itself is mocked:
// there is no payment gateway or inventory system behind this worker. It
// records the order and emits CloudWatch metrics.
type Processor struct {
	metrics *aws.MetricsRecorder
}

// NewProcessor creates a worker processor with AWS clients injected.
func NewProcessor(clients *aws.AWSClients, metricsNamespace string) *Processor {
	return &Processor{
		metrics: aws.NewMetricsRecorder(clients.CloudWatch, metricsNamespace),
	}
}

// Handle receives an SQS batch event and processes each message.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			// Return error: Lambda will retry. If failed too many times, message goes to DLQ.
			log.Printf("worker error: %v", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var msg OrderPlacedMessage
	if err := json.Unmarshal([]byte(rec.Body), &msg); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if msg.OrderID == "" {
		return fmt.Errorf("message missing order_id: %s", rec.Body)
	}

	correlationID := ""
	if attr, ok := rec.MessageAttributes["correlation_id"]; ok && attr.StringValue != nil {
		correlationID = *attr.StringValue
	}

	log.Printf("[worker] order placed order=%s cart=%s total=%s corr=%s",
		msg.OrderID, msg.CartID, msg.Total, correlationID)

	total, err := strconv.ParseFloat(msg.Total, 64)
	if err != nil {
		// record the order anyway; a bad total only loses the value metric
		log.Printf("[worker] unparseable total %q for order=%s: %v", msg.Total, msg.OrderID, err)
		total = 0
	}

	if err := p.metrics.RecordOrderPlaced(ctx, total); err != nil {
		return fmt.Errorf("record metrics for order=%s: %w", msg.OrderID, err)
	}

	log.Printf("[worker] completed order=%s", msg.OrderID)
	return nil
}
