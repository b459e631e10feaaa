package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cheruab/dreamacademyScM-sub002/internal/events"
)

const (
	PublisherKafka  = "kafka"
	PublisherMemory = "memory"
)

// EventConfig selects where grading events go
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka or memory
	KafkaBrokers string // comma separated
	GradingTopic string
}

// Brokers splits KafkaBrokers, dropping empty entries
func (c *EventConfig) Brokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// CreateEventPublisher builds the configured publisher. Disabled publishing and
// the memory publisher both record events in process only.
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled")
		return events.NewMemoryPublisher(logger), nil
	}

	switch strings.ToLower(c.Publisher) {
	case PublisherKafka:
		logger.Info("Creating Kafka event publisher", "brokers", c.KafkaBrokers, "topic", c.GradingTopic)
		publisher, err := events.NewKafkaPublisher(events.KafkaConfig{
			Brokers: c.Brokers(),
			Topic:   c.GradingTopic,
			Logger:  logger,
		})
		if err != nil {
			return nil, fmt.Errorf("event publisher: %w", err)
		}
		return publisher, nil
	case PublisherMemory, "mock":
		return events.NewMemoryPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher, recording events in memory", "publisher", c.Publisher)
		return events.NewMemoryPublisher(logger), nil
	}
}
