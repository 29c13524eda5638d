package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
)

const entityBooking = "booking"

// Действия над бронированием
const (
	ActionCreated       = "created"
	ActionStatusChanged = "status_changed"
	ActionDeleted       = "deleted"
)

// Event событие о бронировании. Формат совместим с потребителями entity/action
type Event struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       BookingData       `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

// BookingData снимок бронирования в событии
type BookingData struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user"`
	FieldType string `json:"field_type"`
	Date      string `json:"date"`
	TimeSlot  string `json:"time_slot"`
	Status    string `json:"status"`
}

// NewEvent собирает событие из бронирования
func NewEvent(action string, b *domain.Booking, actor string, at time.Time) Event {
	return Event{
		Entity:     entityBooking,
		Action:     action,
		ResourceID: strconv.FormatInt(b.ID, 10),
		Topic:      entityBooking + "." + action,
		Metadata:   map[string]string{"actor": actor},
		Data: BookingData{
			ID:        b.ID,
			UserID:    b.UserID,
			FieldType: b.FieldType.String(),
			Date:      b.Date.Format(domain.DateFormat),
			TimeSlot:  b.TimeSlot.String(),
			Status:    string(b.Status),
		},
		Timestamp: at.UTC(),
	}
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher публикует события бронирований в Kafka.
// Ключ сообщения - id бронирования, поэтому события одного бронирования идут в одну партицию
type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           50 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(event Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return kafka.Message{
		Key:   []byte(event.ResourceID),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(event.Entity)},
			{Key: "action", Value: []byte(event.Action)},
		},
	}, nil
}

// NopPublisher используется, когда Kafka выключена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
