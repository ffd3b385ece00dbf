// internal/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/shopworks/storefront-backend/internal/config"
)

const (
	TypeOrderCreated   = "order.created"
	TypeOrderPaid      = "order.paid"
	TypeOrderDelivered = "order.delivered"
)

// OrderEvent is the wire shape of an order lifecycle notification.
type OrderEvent struct {
	Type       string    `json:"type"`
	OrderID    uint      `json:"order_id"`
	UserID     uint      `json:"user_id"`
	TotalPrice float64   `json:"total_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits order lifecycle events. A nil Publisher is a valid no-op,
// used when no broker is configured.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(cfg config.KafkaConfig) *Publisher {
	if !cfg.Enabled() {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, event OrderEvent) error {
	if p == nil {
		return nil
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-%d", event.OrderID)),
		Value: value,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	logrus.WithFields(logrus.Fields{"type": event.Type, "order_id": event.OrderID}).Debug("Published order event")
	return nil
}

// PublishAsync fires the event off the request path; delivery failures are
// logged, never surfaced to the caller.
func (p *Publisher) PublishAsync(event OrderEvent) {
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := p.Publish(ctx, event); err != nil {
			logrus.WithError(err).WithField("type", event.Type).Error("Failed to publish order event")
		}
	}()
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

func NewOrderEvent(eventType string, orderID, userID uint, totalPrice float64) OrderEvent {
	return OrderEvent{
		Type:       eventType,
		OrderID:    orderID,
		UserID:     userID,
		TotalPrice: totalPrice,
		OccurredAt: time.Now(),
	}
}
