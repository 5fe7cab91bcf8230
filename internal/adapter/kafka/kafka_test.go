package kafka

import (
	"testing"
	"time"

	"github.com/couchcryptid/flood-signal-etl/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestMapMessageToRawEvent(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("Chittagong-1988-7"),
		Value:     []byte(`{"Station":"Chittagong"}`),
		Topic:     "raw-bmd-observations",
		Partition: 2,
		Offset:    42,
		Time:      now,
		Headers: []kafkago.Header{
			{Key: "source", Value: []byte("bmd")},
		},
	}

	raw := mapMessageToRawEvent(msg)

	assert.Equal(t, []byte("Chittagong-1988-7"), raw.Key)
	assert.JSONEq(t, `{"Station":"Chittagong"}`, string(raw.Value))
	assert.Equal(t, "raw-bmd-observations", raw.Topic)
	assert.Equal(t, 2, raw.Partition)
	assert.Equal(t, int64(42), raw.Offset)
	assert.Equal(t, now, raw.Timestamp)
	assert.Equal(t, "bmd", raw.Headers["source"])
	assert.Nil(t, raw.Commit, "commit closure is attached by ExtractBatch, not the mapper")
}

func TestMapOutputEventToMessage(t *testing.T) {
	event := domain.OutputEvent{
		Key:   []byte("obs-deadbeef"),
		Value: []byte(`{"id":"obs-deadbeef"}`),
		Headers: map[string]string{
			"region": "coastal",
			"flood":  "true",
		},
	}

	msg := mapOutputEventToMessage(event)

	assert.Equal(t, []byte("obs-deadbeef"), msg.Key)
	assert.Equal(t, event.Value, msg.Value)

	// Header order is deterministic (sorted by key).
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "flood", msg.Headers[0].Key)
	assert.Equal(t, []byte("true"), msg.Headers[0].Value)
	assert.Equal(t, "region", msg.Headers[1].Key)
	assert.Equal(t, []byte("coastal"), msg.Headers[1].Value)
}
