package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisURL = "REDIS_URL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxRoomsPerReservation  = "MAX_ROOMS_PER_RESERVATION"
	EnvMaxGuestsPerReservation = "MAX_GUESTS_PER_RESERVATION"
	EnvDefaultPhoneRegion      = "DEFAULT_PHONE_REGION"

	EnvKafkaEnabled              = "KAFKA_ENABLED"
	EnvReservationEventsTopic    = "RESERVATION_EVENTS_TOPIC"
	EnvReservationEventsDLQTopic = "RESERVATION_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID           = "NOTIFIER_GROUP_ID"

	EnvEmailJSBaseURL              = "EMAILJS_BASE_URL"
	EnvEmailJSServiceID            = "EMAILJS_SERVICE_ID"
	EnvEmailJSPublicKey            = "EMAILJS_PUBLIC_KEY"
	EnvEmailJSPrivateKey           = "EMAILJS_PRIVATE_KEY"
	EnvEmailJSConfirmationTemplate = "EMAILJS_CONFIRMATION_TEMPLATE"
	EnvEmailJSUpdateTemplate       = "EMAILJS_UPDATE_TEMPLATE"
)
