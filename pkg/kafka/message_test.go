package kafka

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"

	"retreat/pkg/logger"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg, err := NewMessage().
		WithKey("res-1").
		WithEventType("reservation.confirmed").
		WithCorrelationID("req-42").
		WithValue(map[string]string{"id": "res-1"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Key != "res-1" {
		t.Errorf("key = %q", msg.Key)
	}
	if msg.GetEventType() != "reservation.confirmed" {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-42" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if msg.GetEventID() == "" {
		t.Error("expected generated event id")
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("expected timestamp header")
	}

	var decoded map[string]string
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["id"] != "res-1" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestMessageBuilder_MarshalError(t *testing.T) {
	_, err := NewMessage().WithKey("k").WithValue(math.Inf(1)).Build()
	if !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	var msg Message
	if msg.GetRetryCount() != 0 {
		t.Fatalf("expected 0 retries")
	}
	msg.IncrementRetryCount()
	msg.IncrementRetryCount()
	if got := msg.GetRetryCount(); got != 2 {
		t.Errorf("retry count = %d, want 2", got)
	}

	msg.Headers[HeaderRetryCount] = "garbage"
	if msg.GetRetryCount() != 0 {
		t.Error("unparseable retry count should read as 0")
	}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorType
	}{
		{"nil", nil, ErrorTypeUnknown},
		{"explicit transient", NewTransientError("smtp down", errors.New("dial")), ErrorTypeTransient},
		{"explicit permanent", NewPermanentError("bad payload", nil), ErrorTypePermanent},
		{"deadline", context.DeadlineExceeded, ErrorTypeTransient},
		{"net error", &net.DNSError{Err: "no such host", IsTimeout: true}, ErrorTypeTransient},
		{"plain error", errors.New("boom"), ErrorTypePermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyError(tt.err); got != tt.want {
				t.Errorf("ClassifyError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldRetry(t *testing.T) {
	transient := NewTransientError("later", nil)
	if !ShouldRetry(transient, 0, 3) {
		t.Error("transient error under the limit should retry")
	}
	if ShouldRetry(transient, 3, 3) {
		t.Error("retries exhausted")
	}
	if ShouldRetry(errors.New("bad"), 0, 3) {
		t.Error("permanent error should not retry")
	}
}

func TestChain_Order(t *testing.T) {
	var calls []string
	mw := func(name string) ProducerMiddleware {
		return func(ctx context.Context, msg Message, next MessageHandler) error {
			calls = append(calls, name)
			return next(ctx, msg)
		}
	}

	handler := chain([]ProducerMiddleware{mw("a"), mw("b")}, func(ctx context.Context, msg Message) error {
		calls = append(calls, "final")
		return nil
	})
	if err := handler(context.Background(), Message{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"a", "b", "final"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
}

func TestConsumer_ProcessMessageRetriesTransient(t *testing.T) {
	c := &Consumer{maxRetries: 2, log: nopLogger()}
	attempts := 0
	err := c.processMessage(context.Background(), func(ctx context.Context, msg Message) error {
		attempts++
		if attempts < 3 {
			return NewTransientError("try again", nil)
		}
		return nil
	}, Message{Headers: map[string]string{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestConsumer_ProcessMessagePermanentStops(t *testing.T) {
	c := &Consumer{maxRetries: 5, log: nopLogger()}
	attempts := 0
	err := c.processMessage(context.Background(), func(ctx context.Context, msg Message) error {
		attempts++
		return NewPermanentError("bad payload", nil)
	}, Message{Headers: map[string]string{}})
	if err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func nopLogger() *logger.Logger {
	return logger.Nop()
}
