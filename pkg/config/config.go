package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"retreat/pkg/client"
	"retreat/pkg/logger"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	RedisURL string

	Port string

	JWTSecret string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	MaxRoomsPerReservation  int
	MaxGuestsPerReservation int
	DefaultPhoneRegion      string

	KafkaEnabled              bool
	ReservationEventsTopic    string
	ReservationEventsDLQTopic string
	NotifierGroupID           string

	EmailJSBaseURL              string
	EmailJSServiceID            string
	EmailJSPublicKey            string
	EmailJSPrivateKey           string
	EmailJSConfirmationTemplate string
	EmailJSUpdateTemplate       string

	Log    *logger.Logger
	Client *client.Client
}

// Load reads the configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load(serviceName string) *Config {
	envErr := godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		RedisURL: getEnvStr(EnvRedisURL, ""),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecret: getEnvStr(EnvJWTSecret, ""),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		MaxRoomsPerReservation:  getEnvNum(EnvMaxRoomsPerReservation, DefaultMaxRoomsPerReservation),
		MaxGuestsPerReservation: getEnvNum(EnvMaxGuestsPerReservation, DefaultMaxGuestsPerReservation),
		DefaultPhoneRegion:      strings.ToUpper(getEnvStr(EnvDefaultPhoneRegion, DefaultPhoneRegion)),

		KafkaEnabled:              getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		ReservationEventsTopic:    getEnvStr(EnvReservationEventsTopic, DefaultReservationEventsTopic),
		ReservationEventsDLQTopic: getEnvStr(EnvReservationEventsDLQTopic, DefaultReservationEventsDLQTopic),
		NotifierGroupID:           getEnvStr(EnvNotifierGroupID, DefaultNotifierGroupID),

		EmailJSBaseURL:              getEnvStr(EnvEmailJSBaseURL, DefaultEmailJSBaseURL),
		EmailJSServiceID:            getEnvStr(EnvEmailJSServiceID, ""),
		EmailJSPublicKey:            getEnvStr(EnvEmailJSPublicKey, ""),
		EmailJSPrivateKey:           getEnvStr(EnvEmailJSPrivateKey, ""),
		EmailJSConfirmationTemplate: getEnvStr(EnvEmailJSConfirmationTemplate, DefaultEmailJSConfirmationTemplate),
		EmailJSUpdateTemplate:       getEnvStr(EnvEmailJSUpdateTemplate, DefaultEmailJSUpdateTemplate),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		cfg.Log.Warn("Failed to load .env file", "error", envErr)
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects Redis only when REDIS_URL is configured.
func (cfg *Config) SetRedis() bool {
	if cfg.RedisURL == "" {
		return false
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL, cfg.MongoConnTimeout)
	return true
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.RedisURL != "" && !regexp.MustCompile(`^rediss?://`).MatchString(cfg.RedisURL) {
		errors = append(errors, fmt.Sprintf("RedisURL must start with 'redis://' or 'rediss://', got: %s", redactURI(cfg.RedisURL)))
	}

	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 16 {
		errors = append(errors, "JWTSecret must be at least 16 characters long")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.MaxRoomsPerReservation <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRoomsPerReservation must be positive, got: %d", cfg.MaxRoomsPerReservation))
	}
	if cfg.MaxGuestsPerReservation <= 0 {
		errors = append(errors, fmt.Sprintf("MaxGuestsPerReservation must be positive, got: %d", cfg.MaxGuestsPerReservation))
	}
	if !regexp.MustCompile(`^[A-Z]{2}$`).MatchString(cfg.DefaultPhoneRegion) {
		errors = append(errors, fmt.Sprintf("DefaultPhoneRegion must be a two-letter region code, got: %s", cfg.DefaultPhoneRegion))
	}

	if cfg.KafkaEnabled && cfg.ReservationEventsTopic == "" {
		errors = append(errors, "ReservationEventsTopic cannot be empty when Kafka is enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"redis_uri", redactURI(cfg.RedisURL),
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecret != "",
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"max_rooms_per_reservation", cfg.MaxRoomsPerReservation,
		"max_guests_per_reservation", cfg.MaxGuestsPerReservation,
		"default_phone_region", cfg.DefaultPhoneRegion,
		"kafka_enabled", cfg.KafkaEnabled,
		"reservation_events_topic", cfg.ReservationEventsTopic,
		"notifier_group_id", cfg.NotifierGroupID,
		"emailjs_service_set", cfg.EmailJSServiceID != "",
	)
}

var credentialRegex = regexp.MustCompile(`^([a-z+]+://)[^:@/]+:[^@]+@`)

func redactURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
