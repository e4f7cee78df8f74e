package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"eduportal/logger"

	"github.com/segmentio/kafka-go"
)

// EventPublisher publishes lifecycle events. Publishing is best-effort
// everywhere it is used; a nil publisher is valid and drops everything.
type EventPublisher interface {
	Publish(topic, key string, value interface{}) error
}

// KafkaPublisher writes events to Kafka.
type KafkaPublisher struct {
	mu     sync.Mutex
	writer *kafka.Writer
}

// NewKafkaPublisher creates a publisher for the given comma-separated broker
// list. An empty list disables publishing.
func NewKafkaPublisher(brokerList string) *KafkaPublisher {
	var validBrokers []string
	for _, b := range strings.Split(brokerList, ",") {
		if b := strings.TrimSpace(b); b != "" {
			validBrokers = append(validBrokers, b)
		}
	}

	if len(validBrokers) == 0 {
		logger.Info("Kafka is disabled (KAFKA_BROKERS is empty)")
		return &KafkaPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(validBrokers...),
		Balancer:     &kafka.LeastBytes{},
		Async:        false,
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireAll,
	}

	logger.Info("Kafka producer initialized. Brokers=%v", validBrokers)
	return &KafkaPublisher{writer: writer}
}

// Publish marshals the value and writes it to the topic. Skipped silently
// when Kafka is disabled.
func (p *KafkaPublisher) Publish(topic, key string, value interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		logger.Error("Error marshaling Kafka message: %v", err)
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: payload,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writer == nil {
		return nil
	}
	err := p.writer.Close()
	p.writer = nil
	return err
}

// publishEvent fires an event in the background. Event publishing is
// non-critical; failures are logged and otherwise ignored.
func publishEvent(p EventPublisher, topic, key string, value map[string]interface{}) {
	if p == nil {
		return
	}
	go func() {
		if err := p.Publish(topic, key, value); err != nil {
			logger.Warn("Failed to publish %s event: %v", value["event"], err)
		}
	}()
}
