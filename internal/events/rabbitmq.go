package events

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/streadway/amqp"
)

// Publisher broadcasts catalog mutations so listing views can refresh.
// Publishing is fire-and-forget from the caller's point of view: a broken
// broker never fails the request that triggered the event.
type Publisher interface {
	PublishProductEvent(action string, productID int64) error
	Close() error
}

const productQueue = "product_events"

const (
	ActionCreated = "product.created"
	ActionUpdated = "product.updated"
	ActionDeleted = "product.deleted"
)

type productEvent struct {
	Action    string    `json:"action"`
	ProductID int64     `json:"product_id"`
	At        time.Time `json:"at"`
}

type rabbitPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewRabbitPublisher connects to the broker and declares the product
// event queue.
func NewRabbitPublisher(url string) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		productQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", productQueue, err)
	}

	return &rabbitPublisher{conn: conn, channel: ch}, nil
}

func (p *rabbitPublisher) PublishProductEvent(action string, productID int64) error {
	body, err := json.Marshal(productEvent{
		Action:    action,
		ProductID: productID,
		At:        time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal product event: %w", err)
	}

	err = p.channel.Publish(
		"", // default exchange
		productQueue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("publish product event: %w", err)
	}
	return nil
}

func (p *rabbitPublisher) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishProductEvent(action string, productID int64) error { return nil }
func (NoopPublisher) Close() error                                            { return nil }

// Emit publishes and logs failures instead of propagating them.
func Emit(p Publisher, action string, productID int64) {
	if err := p.PublishProductEvent(action, productID); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
