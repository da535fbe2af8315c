package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitPublisher publishes events to a durable topic exchange.
// Routing keys are "<event_type>.<tenant_id>" so consumers can bind per tenant.
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

var _ Publisher = (*RabbitPublisher)(nil)

// NewRabbitPublisher dials url, opens a channel and declares the exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange}, nil
}

// Publish writes the event as a persistent JSON message.
func (p *RabbitPublisher) Publish(ctx context.Context, event Event) error {
	routingKey, msg, err := encode(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *RabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func encode(event Event) (string, amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return "", amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", event.EventType, err)
	}
	routingKey := fmt.Sprintf("%s.%s", event.EventType, event.TenantID)
	return routingKey, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Headers: amqp.Table{
			"event_type": event.EventType,
			"tenant_id":  event.TenantID,
			"service":    event.Service,
		},
		Body: body,
	}, nil
}
