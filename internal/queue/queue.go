package queue

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Topics published by the services.
const (
	TopicCampaignCreated = "campaign.created"
	TopicCampaignUpdated = "campaign.updated"
	TopicCampaignDeleted = "campaign.deleted"
	TopicDonationCreated = "donation.created"
	TopicUpdateCreated   = "update.created"
)

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
}

// Event is the envelope every payload travels in.
type Event struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

func NewEvent(topic string, payload any, at time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Topic:      topic,
		OccurredAt: at.UTC(),
		Payload:    payload,
	}
}

// Handler consumes one event.
type Handler func(Event) error

// InMemoryQueue delivers events to its subscribers synchronously, in
// subscription order, on the publishing goroutine.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]Handler
	now      func() time.Time
}

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]Handler),
		now:      time.Now,
	}
}

// Publish hands the event to every subscriber of topic. Publishing to a topic
// nobody listens on is not an error. Handler errors are joined and returned.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]Handler(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return nil
	}

	ev := NewEvent(topic, payload, q.now())
	var errs []error
	for _, handler := range handlers {
		if err := handler(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
}

// SubscribeAll registers handler on every known topic.
func (q *InMemoryQueue) SubscribeAll(handler Handler) {
	for _, topic := range Topics() {
		q.Subscribe(topic, handler)
	}
}

func Topics() []string {
	return []string{
		TopicCampaignCreated,
		TopicCampaignUpdated,
		TopicCampaignDeleted,
		TopicDonationCreated,
		TopicUpdateCreated,
	}
}

// LogSubscriber writes each event to logger at info level.
func LogSubscriber(logger *slog.Logger) Handler {
	return func(ev Event) error {
		logger.Info("event published",
			"event_id", ev.ID,
			"topic", ev.Topic,
			"payload", ev.Payload,
		)
		return nil
	}
}
