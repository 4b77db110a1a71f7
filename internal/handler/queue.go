package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"github.com/cancunbooking/booking-service/internal/model"
	"github.com/cancunbooking/booking-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=queue.go -destination=mocks/queue_mock.go

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

// NewEnqueuer wraps a sarama producer. A nil producer yields a no-op
// enqueuer so the service keeps working without a broker.
func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic string, v any) error {
	if q.producer == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

func newReservationEvent(eventType kafka.EventType, rsv model.Reservation, occurredAt time.Time) kafka.ReservationEvent {
	return kafka.ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          eventType,
		ReservationID: rsv.ID,
		UserID:        rsv.UserID,
		RoomID:        rsv.RoomID,
		StartDate:     rsv.StartDate.String(),
		EndDate:       rsv.EndDate.String(),
		OccurredAt:    occurredAt,
	}
}
