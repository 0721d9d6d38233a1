package worker

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"github.com/Mukund-Vijay/pennywise-todo/internal/cache"
	"github.com/Mukund-Vijay/pennywise-todo/internal/config"
	"github.com/Mukund-Vijay/pennywise-todo/internal/models"
	"github.com/Mukund-Vijay/pennywise-todo/internal/queue"
	"github.com/Mukund-Vijay/pennywise-todo/pkg/logger"
)

// Run starts the Kafka consumer: reads dispatched reminders and materializes
// them into each user's Redis inbox for GET /notifications/history.
// One consumer per process; scale by running more replicas (consumer group shares partitions).
func Run(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}
	brokers := queue.Brokers()
	if len(brokers) == 0 {
		return
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    queue.Topic(),
		GroupID:  "reminder-inbox-workers",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Reminder inbox consumer started", "topic", queue.Topic())
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
			// Commit anyway to avoid poison pill blocking the partition
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleMessage(ctx context.Context, payload []byte) error {
	var n models.Notification
	if err := json.Unmarshal(payload, &n); err != nil {
		return err
	}
	if n.UserID == "" {
		return nil
	}
	return cache.PushNotification(ctx, n)
}
