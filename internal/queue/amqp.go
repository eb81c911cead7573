package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"
)

// AMQPQueue publishes events to a durable topic exchange, using the topic as
// routing key.
type AMQPQueue struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	now      func() time.Time
}

// DialAMQP connects to url and declares exchange.
func DialAMQP(url, exchange string) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &AMQPQueue{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	msg, err := publishing(NewEvent(topic, payload, q.now()))
	if err != nil {
		return err
	}

	// amqp.Channel is not safe for concurrent publishes.
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.Publish(q.exchange, topic, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (q *AMQPQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err := q.ch.Close(); err != nil {
		q.conn.Close()
		return err
	}
	return q.conn.Close()
}

func publishing(ev Event) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("encode event %s: %w", ev.Topic, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Topic,
		Body:         body,
	}, nil
}

var (
	_ Queue = (*InMemoryQueue)(nil)
	_ Queue = (*AMQPQueue)(nil)
)
