package kafka_middleware

import (
	"context"
	"time"

	"retreat/pkg/kafka"
	"retreat/pkg/logger"
)

func LoggingProducerMiddleware(log *logger.Logger) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"key", msg.Key,
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Error("kafka publish failed", append(attrs, "error", err)...)
		} else {
			log.Debug("kafka message published", attrs...)
		}
		return err
	}
}

func LoggingConsumerMiddleware(log *logger.Logger) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		start := time.Now()
		err := next(ctx, msg)

		attrs := []any{
			"topic", msg.Topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"key", msg.Key,
			"event_type", msg.GetEventType(),
			"event_id", msg.GetEventID(),
			"duration", time.Since(start),
		}
		if err != nil {
			log.Warn("kafka message handling failed", append(attrs, "error", err)...)
		} else {
			log.Info("kafka message processed", attrs...)
		}
		return err
	}
}
