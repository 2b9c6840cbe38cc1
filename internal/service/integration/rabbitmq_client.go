package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/school-service/pkg/rabbitmq"
)

// EventPublisher sends domain events. Callers treat failures as non-fatal.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
	Close() error
}

type rabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   zerolog.Logger

	mu sync.Mutex
}

func NewRabbitMQPublisher(url, exchange string, logger zerolog.Logger) (EventPublisher, error) {
	conn, err := rabbitmq.NewConnection(url)
	if err != nil {
		return nil, err
	}

	channel, err := rabbitmq.NewChannel(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := rabbitmq.DeclareTopicExchange(channel, exchange); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	logger.Info().
		Str("exchange", exchange).
		Msg("Connected to RabbitMQ")

	return &rabbitMQPublisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.PublishWithContext(
		publishCtx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.logger.Debug().
		Str("routing_key", routingKey).
		Msg("Event published")

	return nil
}

func (p *rabbitMQPublisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ channel")
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			p.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	return nil
}

type noopPublisher struct {
	logger zerolog.Logger
}

// NewNoopPublisher returns a publisher that only logs, used when the broker
// is disabled or unreachable.
func NewNoopPublisher(logger zerolog.Logger) EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) Publish(_ context.Context, routingKey string, _ interface{}) error {
	p.logger.Debug().Str("routing_key", routingKey).Msg("Event dropped, publisher disabled")
	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}
