package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TopicUser = "user_events"
	TopicCart = "cart_events"

	writeTimeout = 5 * time.Second
)

type Event struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

func NewEvent(typ string, data map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event Event) error
	Close() error
}

type Producer struct {
	writer *kafka.Writer
}

// NewPublisher returns a Kafka producer, or a no-op publisher when no brokers are configured.
func NewPublisher(brokers []string) Publisher {
	if len(brokers) == 0 {
		return Noop{}
	}
	return NewProducer(brokers)
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			BatchTimeout:           10 * time.Millisecond,
			WriteTimeout:           writeTimeout,
			RequiredAcks:           kafka.RequireOne,
			MaxAttempts:            3,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka: json.Marshal failed: %w", err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}); err != nil {
		return fmt.Errorf("kafka: write failed: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

type Noop struct{}

func (Noop) PublishEvent(context.Context, string, string, Event) error { return nil }
func (Noop) Close() error { return nil }

type Published struct {
	Topic string
	Key   string
	Event Event
}

// Memory keeps published events in memory.
type Memory struct {
	mu     sync.Mutex
	events []Published
	Err    error
}

func (m *Memory) PublishEvent(_ context.Context, topic, key string, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.events = append(m.events, Published{Topic: topic, Key: key, Event: event})
	return nil
}

func (m *Memory) Close() error { return nil }

func (m *Memory) Events() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Published, len(m.events))
	copy(out, m.events)
	return out
}

func (m *Memory) Types() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e.Event.Type)
	}
	return out
}
