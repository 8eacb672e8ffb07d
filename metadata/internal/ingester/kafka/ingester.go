package kafka

import (
	"context"
	"encoding/json"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"go.uber.org/zap"

	"github.com/moviedex/moviedex/metadata/pkg/model"
)

// Ingester defines a Kafka ingester for movie record events.
type Ingester struct {
	consumer *kafka.Consumer
	topic    string
	logger   *zap.Logger
}

// NewIngester creates a new Kafka ingester.
func NewIngester(addr string, groupID string, topic string, logger *zap.Logger) (*Ingester, error) {
	consumer, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": addr,
		"group.id":          groupID,
	})
	if err != nil {
		return nil, err
	}
	return &Ingester{consumer: consumer, topic: topic, logger: logger}, nil
}

// Ingest starts consuming record events and returns the channel they are
// emitted on. Malformed messages are logged and skipped; the channel closes
// when the context is cancelled.
func (i *Ingester) Ingest(ctx context.Context) (chan model.RecordEvent, error) {
	if err := i.consumer.SubscribeTopics([]string{i.topic}, nil); err != nil {
		return nil, err
	}
	ch := make(chan model.RecordEvent, 1)
	go func() {
		defer close(ch)
		defer i.consumer.Close()
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			msg, err := i.consumer.ReadMessage(-1)
			if err != nil {
				i.logger.Error("Consumer error", zap.Error(err))
				continue
			}
			var event model.RecordEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				i.logger.Warn("Unmarshal error, skipping message", zap.Error(err))
				continue
			}
			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch, nil
}
