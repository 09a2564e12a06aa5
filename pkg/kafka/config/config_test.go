package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, " broker-1:9092, ,broker-2:9092 ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Brokers) != 2 || cfg.Brokers[0] != "broker-1:9092" || cfg.Brokers[1] != "broker-2:9092" {
		t.Errorf("unexpected brokers: %v", cfg.Brokers)
	}
	if cfg.ConsumerStartOffset != DefaultConsumerStartOffset {
		t.Errorf("expected default start offset, got %d", cfg.ConsumerStartOffset)
	}
	if cfg.ConsumerRetryBackoff != DefaultConsumerRetryBackoff {
		t.Errorf("expected default backoff, got %s", cfg.ConsumerRetryBackoff)
	}
}

func TestValidate_CollectsAllProblems(t *testing.T) {
	cfg := &Config{
		ProducerMaxAttempts:    0,
		ProducerBatchTimeout:   time.Millisecond,
		ProducerRequireAcks:    2,
		ProducerCompression:    "brotli",
		ConsumerStartOffset:    5,
		ConsumerMaxWait:        time.Second,
		ConsumerSessionTimeout: time.Second,
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"broker", "ProducerMaxAttempts", "ProducerCompression", "ProducerRequireAcks", "ConsumerStartOffset"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %s, got:\n%s", want, err)
		}
	}
}
