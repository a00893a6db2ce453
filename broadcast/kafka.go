// Package broadcast publishes execution reports to Kafka. Publishing is
// best-effort: the trading path never waits on or fails with the broker.
package broadcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"microexchange/domain"
)

// FillEvent is the execution report emitted after a successful fill.
type FillEvent struct {
	Symbol    domain.Symbol   `json:"symbol"`
	Side      domain.Side     `json:"side"`
	AvgPrice  decimal.Decimal `json:"avg_price"`
	Quantity  int64           `json:"quantity"`
	Timestamp time.Time       `json:"timestamp"`
}

// Publisher emits fill events to an external sink.
type Publisher interface {
	PublishFill(ctx context.Context, event FillEvent) error
	Close() error
}

// KafkaPublisher writes fill events to one topic, keyed by symbol so
// reports for a symbol stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher connects a publisher to the given brokers and topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) PublishFill(ctx context.Context, event FillEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Symbol),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
