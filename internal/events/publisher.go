// Package events publishes order lifecycle events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/config"
	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type orderLine struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type orderPayload struct {
	ID            string          `json:"id"`
	Owner         string          `json:"owner"`
	Products      []orderLine     `json:"products"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type message struct {
	Type       string       `json:"type"`
	OccurredAt time.Time    `json:"occurredAt"`
	Order      orderPayload `json:"order"`
}

type kafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(cfg config.Kafka) *kafkaPublisher {
	return NewPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.OrderEventsTopic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisher(writer MessageWriter) *kafkaPublisher {
	return &kafkaPublisher{writer: writer}
}

// Publish writes the event keyed by order id, so events of one order stay ordered.
func (p *kafkaPublisher) Publish(ctx context.Context, event entities.OrderEvent) error {
	value, err := json.Marshal(toMessage(event))
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Order.ID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write order event: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

func toMessage(event entities.OrderEvent) message {
	o := event.Order
	lines := make([]orderLine, 0, len(o.Products))
	for _, it := range o.Products {
		lines = append(lines, orderLine{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}

	return message{
		Type:       string(event.Type),
		OccurredAt: event.OccurredAt,
		Order: orderPayload{
			ID:            o.ID,
			Owner:         o.Owner,
			Products:      lines,
			TotalAmount:   o.TotalAmount,
			Status:        string(o.Status),
			PaymentMethod: o.PaymentMethod,
			CreatedAt:     o.CreatedAt,
			UpdatedAt:     o.UpdatedAt,
		},
	}
}
