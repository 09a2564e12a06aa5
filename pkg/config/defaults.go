package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "retreat"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "5001"
	DefaultLogLevel = "info"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultMaxRoomsPerReservation  = 10
	DefaultMaxGuestsPerReservation = 10
	DefaultPhoneRegion             = "US"

	DefaultKafkaEnabled              = true
	DefaultReservationEventsTopic    = "reservation-events"
	DefaultReservationEventsDLQTopic = "reservation-events-dlq"
	DefaultNotifierGroupID           = "reservation-notifier"

	DefaultEmailJSBaseURL              = "https://api.emailjs.com"
	DefaultEmailJSConfirmationTemplate = "template_i3hk5oj"
	DefaultEmailJSUpdateTemplate       = "template_lqtjfho"
)

// Reservation statuses.
const (
	Pending   = "pending"
	Confirmed = "confirmed"
	Cancelled = "cancelled"
)

// Room statuses.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomMaintenance = "maintenance"
	RoomReserved    = "reserved"
)
