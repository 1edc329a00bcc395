package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Shellybish/caddie-mvp-sub000/internal/config"
)

const (
	TopicReviewEvents   = "review.events"
	TopicFavoriteEvents = "favorite.events"
)

const (
	ReviewEventTypeCreated = "created"

	FavoriteEventTypeAdded         = "added"
	FavoriteEventTypeRemoved       = "removed"
	FavoriteEventTypeReordered     = "reordered"
	FavoriteEventTypeReorderFailed = "reorder_failed"
)

type ReviewEventPayload struct {
	EventType string    `json:"event_type"`
	ReviewID  uuid.UUID `json:"review_id"`
	CourseID  uuid.UUID `json:"course_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
}

type FavoriteEventPayload struct {
	EventType        string      `json:"event_type"`
	UserID           uuid.UUID   `json:"user_id"`
	CourseID         uuid.UUID   `json:"course_id,omitempty"`
	OrderedCourseIDs []uuid.UUID `json:"ordered_course_ids,omitempty"`
	Reason           string      `json:"reason,omitempty"`
}

type KafkaProducerClient struct {
	ReviewEventsWriter   *kafka.Writer
	FavoriteEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	reviewWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicReviewEvents,
		Balancer: &kafka.LeastBytes{},
	}

	favoriteWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicFavoriteEvents,
		Balancer: &kafka.LeastBytes{},
	}

	fmt.Println("Initialize Kafka Producers successfully.")

	return &KafkaProducerClient{
		ReviewEventsWriter:   reviewWriter,
		FavoriteEventsWriter: favoriteWriter,
	}, nil
}

func (c *KafkaProducerClient) PublishReviewEvent(ctx context.Context, payload ReviewEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal review event: %w", err)
	}
	return c.ReviewEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.CourseID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) PublishFavoriteEvent(ctx context.Context, payload FavoriteEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal favorite event: %w", err)
	}
	return c.FavoriteEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.UserID.String()),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ReviewEventsWriter != nil {
		c.ReviewEventsWriter.Close()
	}
	if c.FavoriteEventsWriter != nil {
		c.FavoriteEventsWriter.Close()
	}
	fmt.Println("Closed Kafka Producers")
}
