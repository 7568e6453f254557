package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// StartEventConsumer reads conversion events from topic and logs them until ctx is done.
func StartEventConsumer(ctx context.Context, brokers []string, topic, groupID string) error {

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
		StartOffset:    kafka.FirstOffset,
	})
	defer reader.Close()

	logrus.Infof("Conversion event consumer started, brokers: %v, topic: %s", brokers, topic)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logrus.Errorf("Error reading message from Kafka: %v", err)
			continue
		}

		event, err := DecodeEvent(msg.Value)
		if err != nil {
			logrus.Errorf("Failed to parse event at offset %d: %v", msg.Offset, err)
			continue
		}

		LogEvent(event)
	}
}

func DecodeEvent(data []byte) (entity.ConversionEvent, error) {
	var event entity.ConversionEvent
	err := json.Unmarshal(data, &event)
	return event, err
}

func LogEvent(event entity.ConversionEvent) {
	entry := logrus.WithFields(logrus.Fields{
		"request_id":  event.RequestID,
		"files":       event.Files,
		"entries":     len(event.Entries),
		"duration_ms": event.DurationMS,
		"at":          event.At,
	})

	if event.Status == entity.StatusFailed {
		entry.WithField("error", event.Error).Warn("conversion failed")
		return
	}
	entry.Info("conversion completed")
}
