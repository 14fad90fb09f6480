package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Processor consumes order events off SQS and fans them out as customer
// notifications. Delivery here is a log line; the channel integration sits
// behind Notify so a real provider can slot in.
type Processor struct {
	log    *zap.Logger
	notify func(ctx context.Context, ev OrderEvent) error
}

// NewProcessor returns a Processor with the default log-only notifier.
func NewProcessor(log *zap.Logger) *Processor {
	p := &Processor{log: log}
	p.notify = p.logNotification
	return p
}

// Handle receives an SQS batch event and processes each message. A failed
// message fails the batch so the runtime redrives it (and eventually DLQs).
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.log.Error("notifier error", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev OrderEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid event body: %w", err)
	}
	if ev.OrderID == "" || ev.UserID == "" {
		return fmt.Errorf("event missing order/user id: %s", rec.Body)
	}
	return p.notify(ctx, ev)
}

func (p *Processor) logNotification(ctx context.Context, ev OrderEvent) error {
	p.log.Info("order notification",
		zap.String("type", ev.Type),
		zap.String("user_id", ev.UserID),
		zap.String("order_id", ev.OrderID),
		zap.String("title", ev.Title))
	return nil
}
