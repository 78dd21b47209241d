package notify

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

// Routing keys used for published notification events.
const (
	rabbitSuccessKey = "notify.success"
	rabbitErrorKey   = "notify.error"
)

// RabbitNotifier publishes notification events to a RabbitMQ exchange.
type RabbitNotifier struct {
	emitter
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewRabbit connects to the broker at url and creates a RabbitNotifier
// publishing to exchange (declared as a durable topic exchange). Publish
// failures are retried per strat, then logged and dropped.
func NewRabbit(url, exchange string, log logger.Logger, strat retry.Strategy) (*RabbitNotifier, error) {
	if log == nil {
		log = logger.Default()
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}

	n := &RabbitNotifier{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
	}
	n.emitter = emitter{
		publish: n.send,
		strat:   strat,
		log:     log,
		backend: RabbitBackend,
	}
	return n, nil
}

func (n *RabbitNotifier) send(ctx context.Context, key string, body []byte) error {
	routingKey := rabbitErrorKey
	if key == LevelSuccess {
		routingKey = rabbitSuccessKey
	}
	return n.channel.PublishWithContext(ctx, n.exchange, routingKey, false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close closes the channel and connection.
func (n *RabbitNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		n.conn.Close()
		return err
	}
	return n.conn.Close()
}
