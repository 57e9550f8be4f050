package events

import (
	"context"
	"fmt"

	"carslot/pkg/kafka"
	"carslot/pkg/logger"
	"carslot/pkg/model"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"
	TypeReservationsExpired  = "reservations.expired"

	source = "carslot-reservations"
)

// Publisher emits domain events after successful writes. Publishing is
// best-effort: a broker failure must never fail the reservation itself.
type Publisher interface {
	ReservationCreated(ctx context.Context, reservation *model.Reservation)
	ReservationCancelled(ctx context.Context, reservation *model.Reservation)
	ReservationsExpired(ctx context.Context, today string, count int64)
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		log:      log,
	}
}

// partition key: all events for one resource/date land on one partition so
// consumers see them in order.
func slotKey(resource, date string) string {
	return fmt.Sprintf("%s_%s", resource, date)
}

func (p *kafkaPublisher) ReservationCreated(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, TypeReservationCreated, slotKey(reservation.Resource, reservation.Date), reservation)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, reservation *model.Reservation) {
	p.publish(ctx, TypeReservationCancelled, slotKey(reservation.Resource, reservation.Date), reservation)
}

func (p *kafkaPublisher) ReservationsExpired(ctx context.Context, today string, count int64) {
	payload := map[string]any{
		"today": today,
		"count": count,
	}
	p.publish(ctx, TypeReservationsExpired, today, payload)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType, key string, payload any) {
	msg := kafka.NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(source).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Warn("Failed to publish reservation event",
			"event_type", eventType,
			"key", key,
			"error", err,
		)
	}
}

type noopPublisher struct{}

// NewNoopPublisher is used when event publishing is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) ReservationCreated(context.Context, *model.Reservation)   {}
func (noopPublisher) ReservationCancelled(context.Context, *model.Reservation) {}
func (noopPublisher) ReservationsExpired(context.Context, string, int64)       {}
