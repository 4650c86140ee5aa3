package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/krypton/internal/config"
)

const (
	TopicAccountEvents = "account.events"
	TopicViewEvents    = "view.events"
)

type AccountEventType string

const (
	AccountEventTypeCreated         AccountEventType = "created"
	AccountEventTypeSettingsUpdated AccountEventType = "settings_updated"
)

type AccountEventPayload struct {
	EventType AccountEventType `json:"event_type"`
	AccountID uuid.UUID        `json:"account_id"`
	Username  string           `json:"username"`
}

type ViewEventPayload struct {
	Username string    `json:"username"`
	ViewedAt time.Time `json:"viewed_at"`
}

type KafkaProducerClient struct {
	AccountEventsWriter *kafka.Writer
	ViewEventsWriter    *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	accountWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicAccountEvents,
		Balancer: &kafka.LeastBytes{},
	}

	viewWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicViewEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{
		AccountEventsWriter: accountWriter,
		ViewEventsWriter:    viewWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishAccountEvent(ctx context.Context, payload AccountEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal account event: %w", err)
	}

	err = c.AccountEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Username),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("cannot publish account event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) PublishViewEvent(ctx context.Context, payload ViewEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("cannot marshal view event: %w", err)
	}

	err = c.ViewEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Username),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("cannot publish view event: %w", err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.AccountEventsWriter != nil {
		c.AccountEventsWriter.Close()
	}
	if c.ViewEventsWriter != nil {
		c.ViewEventsWriter.Close()
	}
}
