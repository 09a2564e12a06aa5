// Package events publishes reservation notifications to Kafka.
package events

import (
	"context"
	"fmt"
	"retreat/pkg/kafka"
	"retreat/pkg/middleware"
	"retreat/pkg/model"
	"time"
)

const (
	EventReservationConfirmed = "reservation.confirmed"
	EventGuestUpdated         = "reservation.guest_updated"

	SchemaVersion = "1"
	Source        = "reservations"

	// HeaderGuestID lets consumers route guest updates without decoding the payload.
	HeaderGuestID = "guest-id"
)

// ReservationConfirmedEvent is the payload of reservation.confirmed.
type ReservationConfirmedEvent struct {
	ReservationID  string        `json:"reservation_id"`
	UserID         string        `json:"user_id"`
	RoomIDs        []string      `json:"room_ids"`
	CheckIn        string        `json:"check_in"`
	CheckOut       string        `json:"check_out"`
	NumberOfGuests int           `json:"number_of_guests"`
	TotalPrice     float64       `json:"total_price"`
	Guests         []model.Guest `json:"guests"`
	OccurredAt     time.Time     `json:"occurred_at"`
}

// GuestUpdatedEvent is the payload of reservation.guest_updated.
type GuestUpdatedEvent struct {
	ReservationID string      `json:"reservation_id"`
	CheckIn       string      `json:"check_in"`
	CheckOut      string      `json:"check_out"`
	Guest         model.Guest `json:"guest"`
	OccurredAt    time.Time   `json:"occurred_at"`
}

// KafkaNotifier emits one message per event keyed by reservation id, so events for
// the same reservation stay ordered on one partition.
type KafkaNotifier struct {
	publisher kafka.Publisher
}

func NewKafkaNotifier(publisher kafka.Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher}
}

func (n *KafkaNotifier) ReservationConfirmed(ctx context.Context, r *model.Reservation) error {
	event := ReservationConfirmedEvent{
		ReservationID:  r.ID,
		UserID:         r.UserID,
		RoomIDs:        r.RoomIDs,
		CheckIn:        r.CheckIn.UTC().Format(model.DateLayout),
		CheckOut:       r.CheckOut.UTC().Format(model.DateLayout),
		NumberOfGuests: r.NumberOfGuests,
		TotalPrice:     r.TotalPrice,
		Guests:         r.Guests,
		OccurredAt:     time.Now().UTC(),
	}
	return n.publish(ctx, r.ID, EventReservationConfirmed, event, nil)
}

func (n *KafkaNotifier) GuestUpdated(ctx context.Context, r *model.Reservation, g *model.Guest) error {
	event := GuestUpdatedEvent{
		ReservationID: r.ID,
		CheckIn:       r.CheckIn.UTC().Format(model.DateLayout),
		CheckOut:      r.CheckOut.UTC().Format(model.DateLayout),
		Guest:         *g,
		OccurredAt:    time.Now().UTC(),
	}
	return n.publish(ctx, r.ID, EventGuestUpdated, event, map[string]string{HeaderGuestID: g.ID})
}

func (n *KafkaNotifier) publish(ctx context.Context, key, eventType string, payload any, headers map[string]string) error {
	builder := kafka.NewMessage()
	for k, v := range headers {
		builder.WithHeader(k, v)
	}

	msg, err := builder.
		WithKey(key).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.RequestIDFrom(ctx)).
		WithValue(payload).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := n.publisher.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

// Noop is used when Kafka is disabled.
type Noop struct{}

func (Noop) ReservationConfirmed(ctx context.Context, r *model.Reservation) error {
	return nil
}

func (Noop) GuestUpdated(ctx context.Context, r *model.Reservation, g *model.Guest) error {
	return nil
}
