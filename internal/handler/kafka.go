package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/config"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

// ProductInvalidator drops cached catalog entries.
type ProductInvalidator interface {
	Invalidate(productID string)
}

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq         MessageWriter
	reader      MessageReader
	logger      *slog.Logger
	validate    *validator.Validate
	invalidator ProductInvalidator
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, invalidator ProductInvalidator) *kafkaHandler {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: cfg.Brokers,
		GroupID: cfg.GroupID,
		Topic:   cfg.ProductEventsTopic,
		MaxWait: cfg.ReaderMaxWait,
	})
	dlq := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: cfg.BatchTimeout,
	}
	return newKafkaHandler(logger, reader, dlq, invalidator)
}

func newKafkaHandler(logger *slog.Logger, reader MessageReader, dlq MessageWriter, invalidator ProductInvalidator) *kafkaHandler {
	return &kafkaHandler{
		logger:      logger.With(slog.String("handler", "kafka")),
		reader:      reader,
		dlq:         dlq,
		validate:    validator.New(),
		invalidator: invalidator,
	}
}

// Consume reads product events until ctx is cancelled. Bad messages go to
// the <topic>-dlq topic and are committed so they are not redelivered.
func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		eventsInProgress.Inc()
		start := time.Now()

		if err := h.handleProductEvent(m); err != nil {
			eventsFailed.Inc()
			h.logger.Error("failed to handle message", slog.Any("error", err))

			// kafka-go retries writes itself
			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
				eventsInProgress.Dec()
				continue
			}
			eventsDLQ.Inc()
		} else {
			eventsProcessed.Inc()
		}

		eventProcessingDuration.Observe(time.Since(start).Seconds())
		eventsInProgress.Dec()

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleProductEvent(m kafka.Message) error {
	var event ProductEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal product event: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid product event: %w", err)
	}

	h.invalidator.Invalidate(event.ProductID)
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	return h.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	})
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
