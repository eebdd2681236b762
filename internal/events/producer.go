// Package events publishes storefront mutation events to Kafka. Publishing
// is best-effort everywhere: a broker outage must never fail a customer
// request.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
)

const (
	TopicProducts = "product_events"
	TopicCart     = "cart_events"
	TopicOrders   = "order_events"
)

// Writer is the slice of kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer Writer
}

// New returns nil when no broker is configured; a nil Producer accepts and
// drops events.
func New(brokers []string) *Producer {
	if len(brokers) == 0 || brokers[0] == "" {
		return nil
	}
	return NewWithWriter(&kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Balancer: &kafka.Hash{},
	})
}

// NewWithWriter wraps an already-configured writer.
func NewWithWriter(w Writer) *Producer {
	if w == nil {
		return nil
	}
	return &Producer{writer: w}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, event map[string]any) error {
	if p == nil {
		return nil
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal failed: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
	})
}

func (p *Producer) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
