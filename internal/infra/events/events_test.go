package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:        42,
		UserID:    "u1",
		FieldType: domain.FieldBasket,
		Date:      time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		TimeSlot:  "09:00 - 10:00",
		Status:    domain.StatusPending,
	}
}

func TestPublish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	at := time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, p.Publish(context.Background(), NewEvent(ActionCreated, testBooking(), "u1", at)))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, at, msg.Time)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "booking", decoded["entity"])
	assert.Equal(t, "created", decoded["action"])
	assert.Equal(t, "42", decoded["resourceId"])
	assert.Equal(t, "booking.created", decoded["topic"])

	data := decoded["data"].(map[string]interface{})
	assert.Equal(t, "09:00 - 10:00", data["time_slot"])
	assert.Equal(t, "2026-10-19", data["date"])
	assert.Equal(t, "pending", data["status"])
}

func TestPublish_WriterError(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), NewEvent(ActionDeleted, testBooking(), "admin", time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestNopPublisher(t *testing.T) {
	var p NopPublisher
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
