package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// partitionKeyHeader carries the exam ID so all events of one exam land on one partition
const partitionKeyHeader = "partition_key"

// EventPublisher publishes grading events. Publish sends all events in one call.
type EventPublisher interface {
	Publish(ctx context.Context, events ...*GradingEvent) error
	Close() error
}

// KafkaConfig holds the settings of the Kafka publisher
type KafkaConfig struct {
	Brokers []string
	Topic   string
	Logger  *slog.Logger
}

// WatermillPublisher publishes events through any watermill message.Publisher
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
	logger    *slog.Logger
}

// NewKafkaPublisher creates a Kafka publisher keyed by exam ID
func NewKafkaPublisher(cfg KafkaConfig) (*WatermillPublisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher: no brokers configured")
	}

	marshaler := kafka.NewWithPartitioningMarshaler(func(_ string, msg *message.Message) (string, error) {
		return msg.Metadata.Get(partitionKeyHeader), nil
	})

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   cfg.Brokers,
		Marshaler: marshaler,
	}, watermill.NewSlogLogger(cfg.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka publisher: %w", err)
	}

	return NewWatermillPublisher(publisher, cfg.Topic, cfg.Logger), nil
}

// NewWatermillPublisher wraps a watermill publisher, e.g. gochannel in tests
func NewWatermillPublisher(publisher message.Publisher, topic string, logger *slog.Logger) *WatermillPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     topic,
		logger:    logger,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, events ...*GradingEvent) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]*message.Message, 0, len(events))
	for _, event := range events {
		msg, err := toMessage(ctx, event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := p.publisher.Publish(p.topic, msgs...); err != nil {
		p.logger.Error("Failed to publish grading events",
			"count", len(msgs),
			"first_event_type", events[0].Type,
			"error", err)
		return fmt.Errorf("failed to publish grading events: %w", err)
	}

	p.logger.Debug("Published grading events", "count", len(msgs), "topic", p.topic)
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}

func toMessage(ctx context.Context, event *GradingEvent) (*message.Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(event.Type))
	msg.Metadata.Set("source", event.Source)
	msg.Metadata.Set("version", event.Version)
	msg.Metadata.Set("timestamp", event.Timestamp.Format(time.RFC3339))
	msg.Metadata.Set(partitionKeyHeader, event.Key)

	return msg, nil
}

// MemoryPublisher keeps events in memory. It stands in when publishing is
// disabled and in tests.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []GradingEvent
	logger *slog.Logger
}

func NewMemoryPublisher(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{logger: logger}
}

func (m *MemoryPublisher) Publish(_ context.Context, events ...*GradingEvent) error {
	m.mu.Lock()
	for _, e := range events {
		m.events = append(m.events, *e)
	}
	m.mu.Unlock()

	m.logger.Debug("Recorded grading events in memory", "count", len(events))
	return nil
}

func (m *MemoryPublisher) Close() error { return nil }

// Published returns a copy of everything recorded so far
func (m *MemoryPublisher) Published() []GradingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GradingEvent(nil), m.events...)
}

func (m *MemoryPublisher) Reset() {
	m.mu.Lock()
	m.events = nil
	m.mu.Unlock()
}
