package notify

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

// KafkaNotifier publishes notification events to a Kafka topic.
type KafkaNotifier struct {
	emitter
	writer *kafka.Writer
}

// NewKafka creates a KafkaNotifier publishing to topic via the given
// brokers. Publish failures are retried per strat, then logged and dropped.
func NewKafka(brokers []string, topic string, log logger.Logger, strat retry.Strategy) *KafkaNotifier {
	if log == nil {
		log = logger.Default()
	}
	n := &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
	n.emitter = emitter{
		publish: n.send,
		strat:   strat,
		log:     log,
		backend: KafkaBackend,
	}
	return n
}

func (n *KafkaNotifier) send(ctx context.Context, key string, body []byte) error {
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: body,
	})
}

// Close closes the underlying Kafka writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
