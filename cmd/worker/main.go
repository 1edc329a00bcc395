package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/Shellybish/caddie-mvp-sub000/adapters/event"
	"github.com/Shellybish/caddie-mvp-sub000/adapters/persistence"
	courseUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/config"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

// The worker tails review events and rebuilds the cached top-rated and
// trending course rankings whenever new ratings land.
func main() {
	fmt.Println("Starting Caddie Worker...")

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	// Repositories
	courseRepo := persistence.NewPostgresCourseRepo(dbPool, appLogger)

	// Worker Use Case
	topCoursesUseCase := courseUC.NewTopCoursesUseCase(courseRepo, redisClient, cfg.Redis.CacheTTL, appLogger)

	// Kafka Consumer
	reviewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicReviewEvents,
		GroupID:  "course-ranking-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer reviewConsumer.Close()

	log.Printf("Worker listening on topic '%s'...", event.TopicReviewEvents)

	ctx := context.Background()
	for {
		msg, err := reviewConsumer.ReadMessage(ctx)
		if err != nil {
			log.Printf("ERROR: Failed to read message from Kafka: %v", err)
			continue
		}

		var payload event.ReviewEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			log.Printf("ERROR: Failed to unmarshal event: %v. Skipping.", err)
			commitMessage(reviewConsumer, msg)
			continue
		}

		log.Printf("Processing event: [%s] for CourseID: %s", payload.EventType, payload.CourseID)

		if err := topCoursesUseCase.Refresh(ctx); err != nil {
			log.Printf("ERROR: Failed to refresh course rankings: %v", err)
			continue
		}

		commitMessage(reviewConsumer, msg)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Printf("ERROR: Failed to commit message: %v", err)
	}
}
