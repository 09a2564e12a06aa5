package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"retreat/internal/notifier"
	"retreat/internal/notifier/emailjs"
	"retreat/pkg/config"
	"retreat/pkg/kafka"
	kafka_config "retreat/pkg/kafka/config"
	kafka_middleware "retreat/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.EmailJSServiceID == "" || cfg.EmailJSPublicKey == "" {
		cfg.Log.Fatal("EMAILJS_SERVICE_ID and EMAILJS_PUBLIC_KEY are required")
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	mailer := emailjs.NewClient(emailjs.Config{
		BaseURL:    cfg.EmailJSBaseURL,
		ServiceID:  cfg.EmailJSServiceID,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
		Timeout:    cfg.WriteTimeout,
	}, cfg.Log)

	handler := notifier.NewHandler(mailer, notifier.Templates{
		Confirmation: cfg.EmailJSConfirmationTemplate,
		Update:       cfg.EmailJSUpdateTemplate,
	}, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.ReservationEventsTopic,
		cfg.NotifierGroupID,
		cfg.ReservationEventsDLQTopic,
		handler.Handle,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))
	consumer.Use(metrics.ConsumerMiddleware())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Starting notifier",
		"topic", cfg.ReservationEventsTopic,
		"group_id", cfg.NotifierGroupID,
		"brokers", kafkaCfg.Brokers,
	)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped with error", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	cfg.Log.Info("Notifier stopped", metrics.Snapshot().LogValues()...)
}
