package main

import (
	"context"
	"encoding/json"
	"log"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/config"
	"github.com/SergeyBogomolovv/shop-service/internal/handler"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

var (
	productIDs = []string{"P1", "P2", "P3", "P4", "P5"}
	eventTypes = []string{"product.updated", "product.updated", "product.updated", "product.deleted"}
)

func generateProductEvent() handler.ProductEvent {
	return handler.ProductEvent{
		Type:      eventTypes[rand.Intn(len(eventTypes))],
		ProductID: productIDs[rand.Intn(len(productIDs))],
		Price:     decimal.New(int64(rand.Intn(10000)+100), -2),
	}
}

func main() {
	godotenv.Load()
	conf := config.New()

	writer := &kafka.Writer{
		Addr:     kafka.TCP(conf.Kafka.Brokers...),
		Topic:    conf.Kafka.ProductEventsTopic,
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			event := generateProductEvent()
			data, _ := json.Marshal(event)
			err := writer.WriteMessages(ctx, kafka.Message{Key: []byte(event.ProductID), Value: data})
			if err != nil {
				log.Println("failed to publish product event:", err)
				continue
			}
			log.Println("product event published", event.Type, event.ProductID, event.Price)
		case <-ctx.Done():
			return
		}
	}
}
