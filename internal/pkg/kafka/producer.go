package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type Producer interface {
	SendMessage(topic string, message interface{}) error
	Close() error
}

type kafkaProducer struct {
	writer *kafka.Writer
}

// NewProducer connects to the first reachable broker and makes sure topic exists.
// If no broker answers, a logging mock producer is returned instead.
func NewProducer(brokers []string, topic string) Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logrus.Infof("Kafka producer configured for brokers: %v", brokers)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var conn *kafka.Conn
	var err error
	for _, broker := range brokers {
		conn, err = kafka.DialContext(ctx, "tcp", broker)
		if err == nil {
			break
		}
	}
	if conn == nil {
		logrus.Warnf("Kafka connection failed: %v", err)
		logrus.Warn("Using mock producer instead")
		writer.Close()
		return NewMockProducer()
	}
	defer conn.Close()

	err = conn.CreateTopics(kafka.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil {
		logrus.Infof("Could not create topic (might already exist): %v", err)
	} else {
		logrus.Infof("Created topic: %s", topic)
	}

	return &kafkaProducer{writer: writer}
}

func (p *kafkaProducer) SendMessage(topic string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte("webp-converter"),
		Value: messageBytes,
		Time:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	logrus.Debugf("Message successfully sent to topic: %s", topic)
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.writer.Close()
}

// mockProducer logs messages instead of sending them.
type mockProducer struct{}

func NewMockProducer() Producer {
	return &mockProducer{}
}

func (m *mockProducer) SendMessage(topic string, message interface{}) error {
	logrus.WithField("topic", topic).Debugf("MOCK: %+v", message)
	return nil
}

func (m *mockProducer) Close() error {
	return nil
}
