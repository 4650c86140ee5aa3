package main

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/krypton/adapters/event"
	"github.com/khoahotran/krypton/adapters/persistence"
	pageUC "github.com/khoahotran/krypton/internal/application/usecase/page"
	"github.com/khoahotran/krypton/internal/config"
	"github.com/khoahotran/krypton/pkg/logger"
)

func main() {

	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	appLogger.Info("Starting Krypton Worker...")

	// Database
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	// Repositories
	viewRepo := persistence.NewPostgresViewRepo(dbPool)

	// Worker Use Case
	processViewEventUC := pageUC.NewProcessViewEventUseCase(viewRepo, cfg.Worker.FlushQuiet, appLogger)
	defer processViewEventUC.Close()

	// Kafka Consumer
	viewConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicViewEvents,
		GroupID:  "view-counter-group",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	defer viewConsumer.Close()

	appLogger.Info("Worker listening on topic '" + event.TopicViewEvents + "'...")

	ctx := context.Background()
	for {
		msg, err := viewConsumer.ReadMessage(ctx)
		if err != nil {
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		var payload event.ViewEventPayload
		if err := json.Unmarshal(msg.Value, &payload); err != nil {
			appLogger.Error("Failed to unmarshal view event, skipping", err)
			commitMessage(viewConsumer, msg, appLogger)
			continue
		}

		if err := processViewEventUC.Execute(ctx, payload); err != nil {
			appLogger.Error("Failed to process view event for "+payload.Username, err)
			continue
		}

		commitMessage(viewConsumer, msg, appLogger)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, appLogger logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		appLogger.Error("Failed to commit message", err)
	}
}
