// Package events publishes rate change notifications.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/wallet_fx_engine/internal/core/domain"
	"github.com/SscSPs/wallet_fx_engine/internal/core/ports/gateways"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes RateChangedEvent as JSON, keyed by "FROM/TO" so every
// change of a pair lands on the same partition in order.
type KafkaPublisher struct {
	writer messageWriter
}

var _ gateways.RateEventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher builds a synchronous writer for topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		MaxAttempts:  3,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 10 * time.Second,
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Debug(fmt.Sprintf(msg, args...))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			logger.Error(fmt.Sprintf(msg, args...))
		}),
	}
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) PublishRateChanged(ctx context.Context, event domain.RateChangedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal rate event: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.FromCurrencyCode + "/" + event.ToCurrencyCode),
		Value: data,
		Time:  event.UpdatedAt,
		Headers: []kafka.Header{
			{Key: "event", Value: []byte("fx.rate-changed")},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
