package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
}

const ReservationEventsTopic = "reservation-events"

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationUpdated   EventType = "reservation.updated"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is the payload published to ReservationEventsTopic
// after every successful reservation mutation.
type ReservationEvent struct {
	EventID       string    `json:"eventId"`
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservationId"`
	UserID        int64     `json:"userId"`
	RoomID        int64     `json:"roomId"`
	StartDate     string    `json:"startDate,omitempty"`
	EndDate       string    `json:"endDate,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
