package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ds124wfegd/WB_L3/webpconverter/internal/entity"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	data, err := json.Marshal(entity.ConversionEvent{
		RequestID:  "req-1",
		Files:      2,
		Entries:    []string{"logo.webp", "photo.webp"},
		Status:     entity.StatusCompleted,
		DurationMS: 42,
		At:         at,
	})
	require.NoError(t, err)

	event, err := DecodeEvent(data)
	require.NoError(t, err)
	assert.Equal(t, "req-1", event.RequestID)
	assert.Equal(t, []string{"logo.webp", "photo.webp"}, event.Entries)
	assert.True(t, at.Equal(event.At))

	_, err = DecodeEvent([]byte("{not json"))
	assert.Error(t, err)
}

func TestLogEvent(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	LogEvent(entity.ConversionEvent{RequestID: "ok", Status: entity.StatusCompleted})
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)

	LogEvent(entity.ConversionEvent{RequestID: "bad", Status: entity.StatusFailed, Error: "boom"})
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "boom", hook.LastEntry().Data["error"])
}

func TestMockProducer(t *testing.T) {
	p := NewMockProducer()
	assert.NoError(t, p.SendMessage("image-conversions", entity.ConversionEvent{RequestID: "req"}))
	assert.NoError(t, p.Close())
}
