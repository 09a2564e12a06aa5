package main

import (
	"retreat/internal/availability"
	"retreat/internal/reservations/events"
	reservationshandler "retreat/internal/reservations/handler"
	reservationsrepo "retreat/internal/reservations/repository"
	reservationsservice "retreat/internal/reservations/service"
	reservationsvalidator "retreat/internal/reservations/validator"
	roomshandler "retreat/internal/rooms/handler"
	roomsrepo "retreat/internal/rooms/repository"
	roomsservice "retreat/internal/rooms/service"
	"retreat/pkg/app"
	"retreat/pkg/config"
	"retreat/pkg/kafka"
	kafka_config "retreat/pkg/kafka/config"
	kafka_middleware "retreat/pkg/kafka/middleware"
)

const ServiceName = "reservations"

func main() {
	cfg := config.Load(ServiceName)
	if cfg.JWTSecret == "" {
		cfg.Log.Fatal("JWT_SECRET is required")
	}

	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Reservations service")
	serverApp := app.NewApplication(cfg)

	notifier := initNotifier(cfg, serverApp)
	roomHandler, reservationHandler := initHandlers(cfg, notifier)

	serverApp.SetApp(roomHandler, reservationHandler)
	serverApp.Run()
}

func initHandlers(cfg *config.Config, notifier reservationsservice.Notifier) (*roomshandler.RoomHandler, *reservationshandler.ReservationHandler) {
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	reservationRepo := reservationsrepo.NewMongoReservationRepository(cfg)
	slotRepo := reservationsrepo.NewMongoSlotRepository(cfg)

	evaluator := availability.NewEvaluator(reservationRepo, cfg.Log)

	roomService := roomsservice.NewRoomService(roomRepo, evaluator, cfg)
	reservationService := reservationsservice.NewReservationService(
		reservationRepo,
		slotRepo,
		roomRepo,
		evaluator,
		reservationsvalidator.NewReservationValidator(cfg.MaxRoomsPerReservation, cfg.MaxGuestsPerReservation),
		notifier,
		cfg,
	)

	cfg.Log.Info("Reservation services initialized", "database", cfg.MongoDatabaseName)
	return roomshandler.NewRoomHandler(roomService, cfg.Log),
		reservationshandler.NewReservationHandler(reservationService, []byte(cfg.JWTSecret), cfg.Log)
}

// initNotifier publishes reservation events to Kafka when enabled.
func initNotifier(cfg *config.Config, serverApp *app.Application) reservationsservice.Notifier {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation events will not be published")
		return events.Noop{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationEventsTopic, cfg.ReservationEventsDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	producer.Use(metrics.ProducerMiddleware())

	serverApp.OnShutdown(func() {
		cfg.Log.Info("Kafka producer metrics", metrics.Snapshot().LogValues()...)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	})

	cfg.Log.Info("Publishing reservation events", "topic", cfg.ReservationEventsTopic, "brokers", kafkaCfg.Brokers)
	return events.NewKafkaNotifier(producer)
}
