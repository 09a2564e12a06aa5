package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		MongoURI:                "mongodb://localhost:27017",
		MongoDatabaseName:       "retreat",
		MongoConnTimeout:        time.Second,
		Port:                    "5001",
		RateLimitRequests:       10,
		RateLimitWindow:         time.Minute,
		RequestTimeout:          time.Second,
		IdempotencyTTL:          time.Hour,
		MaxRequestSize:          1024,
		ReadTimeout:             time.Second,
		WriteTimeout:            time.Second,
		IdleTimeout:             time.Second,
		ShutdownTimeout:         time.Second,
		MaxRoomsPerReservation:  5,
		MaxGuestsPerReservation: 5,
		DefaultPhoneRegion:      "US",
		ReservationEventsTopic:  "reservation-events",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = "99999" }, "Port must be between"},
		{"bad mongo scheme", func(c *Config) { c.MongoURI = "postgres://localhost" }, "MongoURI must start with"},
		{"bad redis scheme", func(c *Config) { c.RedisURL = "http://cache:6379" }, "RedisURL must start with"},
		{"short jwt secret", func(c *Config) { c.JWTSecret = "short" }, "JWTSecret must be at least"},
		{"region", func(c *Config) { c.DefaultPhoneRegion = "USA" }, "DefaultPhoneRegion"},
		{"kafka without topic", func(c *Config) { c.KafkaEnabled = true; c.ReservationEventsTopic = "" }, "ReservationEventsTopic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NumbersEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimitRequests = 0
	cfg.MaxRequestSize = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "1. ") || !strings.Contains(err.Error(), "2. ") {
		t.Errorf("expected both problems listed, got: %v", err)
	}
}

func TestRedactURI(t *testing.T) {
	got := redactURI("mongodb://admin:s3cret@db:27017/retreat")
	if strings.Contains(got, "s3cret") || !strings.HasPrefix(got, "mongodb://***:***@") {
		t.Errorf("redactURI() = %q", got)
	}
	if got := redactURI("redis://cache:6379"); got != "redis://cache:6379" {
		t.Errorf("redactURI() changed a URI without credentials: %q", got)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("RETREAT_TEST_NUM", "42")
	t.Setenv("RETREAT_TEST_BAD_NUM", "forty")
	t.Setenv("RETREAT_TEST_BOOL", "true")
	t.Setenv("RETREAT_TEST_DURATION", "90s")

	if got := getEnvNum("RETREAT_TEST_NUM", 1); got != 42 {
		t.Errorf("getEnvNum = %d", got)
	}
	if got := getEnvNum("RETREAT_TEST_BAD_NUM", 1); got != 1 {
		t.Errorf("getEnvNum with bad value = %d, want fallback", got)
	}
	if !getEnvBool("RETREAT_TEST_BOOL", false) {
		t.Error("getEnvBool = false")
	}
	if got := getEnvDuration("RETREAT_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("getEnvDuration = %s", got)
	}
	if got := getEnvStr("RETREAT_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("getEnvStr = %q", got)
	}
}

func TestNormalizePagination(t *testing.T) {
	if got := NormalizePaginationLimit(0); got != 10 {
		t.Errorf("NormalizePaginationLimit(0) = %d", got)
	}
	if got := NormalizePaginationLimit(DefaultPaginationLimit + 1); got != DefaultPaginationLimit {
		t.Errorf("NormalizePaginationLimit(over) = %d", got)
	}
	if got := NormalizeOffset(-5); got != 0 {
		t.Errorf("NormalizeOffset(-5) = %d", got)
	}
}
