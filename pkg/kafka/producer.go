package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafka_config "retreat/pkg/kafka/config"
	"retreat/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// Publisher is the part of Producer that event emitters depend on.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// Producer wraps a kafka-go writer with middleware and an optional DLQ.
type Producer struct {
	writer     *kafka.Writer
	dlqWriter  *kafka.Writer
	topic      string
	middleware []ProducerMiddleware
	closed     bool
	mu         sync.RWMutex
}

type ProducerMiddleware func(ctx context.Context, msg Message, next MessageHandler) error

func NewProducer(cfg *kafka_config.Config, topic string, dlqTopic string, log *logger.Logger) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	compression := compressionCodec(cfg.ProducerCompression)

	producer := &Producer{
		writer:     newWriter(cfg.Brokers, topic, requiredAcks(cfg.ProducerRequireAcks), compression, cfg.ProducerMaxAttempts, log),
		topic:      topic,
		middleware: make([]ProducerMiddleware, 0),
	}
	producer.writer.BatchTimeout = cfg.ProducerBatchTimeout

	if dlqTopic != "" {
		producer.dlqWriter = newWriter(cfg.Brokers, dlqTopic, kafka.RequireAll, compression, 3, log)
	}

	return producer, nil
}

func newWriter(brokers []string, topic string, acks kafka.RequiredAcks, compression compress.Compression, attempts int, log *logger.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // same key, same partition
		RequiredAcks: acks,
		Compression:  compression,
		MaxAttempts:  attempts,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...any) {
			log.Error("kafka writer error", "topic", topic, "detail", fmt.Sprintf(msg, args...))
		}),
	}
}

func compressionCodec(name string) compress.Compression {
	switch name {
	case "none":
		return 0
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.Snappy
	}
}

func requiredAcks(acks int) kafka.RequiredAcks {
	switch acks {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	middleware := p.middleware
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	msg.Topic = p.topic

	return chain(middleware, p.publishInternal)(ctx, msg)
}

func chain(middleware []ProducerMiddleware, final MessageHandler) MessageHandler {
	handler := final
	for i := len(middleware) - 1; i >= 0; i-- {
		mw := middleware[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return mw(ctx, m, next)
		}
	}
	return handler
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg, msg.Timestamp))
	if err == nil {
		return nil
	}

	if p.dlqWriter != nil {
		if dlqErr := writeDLQ(ctx, p.dlqWriter, msg, p.topic, err, nil); dlqErr != nil {
			return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
		}
	}
	return err
}

// writeDLQ copies msg to the dead letter topic with the failure recorded in its headers.
func writeDLQ(ctx context.Context, w messageWriter, msg Message, topic string, cause error, extra map[string]string) error {
	headers := make(map[string]string, len(msg.Headers)+3+len(extra))
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = topic
	headers["dlq-error"] = cause.Error()
	headers["dlq-timestamp"] = time.Now().UTC().Format(time.RFC3339)
	for k, v := range extra {
		headers[k] = v
	}
	msg.Headers = headers

	return w.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func toKafkaMessage(msg Message, ts time.Time) kafka.Message {
	km := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  ts,
	}
	for k, v := range msg.Headers {
		km.Headers = append(km.Headers, kafka.Header{Key: k, Value: []byte(v)})
	}
	return km
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	err := p.writer.Close()
	if p.dlqWriter != nil {
		if dlqErr := p.dlqWriter.Close(); err == nil {
			err = dlqErr
		}
	}
	return err
}
