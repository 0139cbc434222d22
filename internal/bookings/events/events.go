package events

import (
	"context"
	"fmt"

	"tablebook/pkg/kafka"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingDeleted = "booking.deleted"

	source = "tablebook-bookings"
)

// BookingEvent is the payload published to the booking topic for every
// successful mutation.
type BookingEvent struct {
	Event   string         `json:"event"`
	Booking *model.Booking `json:"booking"`
}

// Publisher emits booking lifecycle events. A nil *Publisher is a no-op so
// callers never need to branch on whether eventing is enabled.
type Publisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewPublisher(producer *kafka.Producer, log *logger.Logger) *Publisher {
	if producer == nil {
		return nil
	}
	return &Publisher{producer: producer, log: log}
}

func (p *Publisher) BookingCreated(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingCreated, booking)
}

func (p *Publisher) BookingDeleted(ctx context.Context, booking *model.Booking) error {
	return p.publish(ctx, EventBookingDeleted, booking)
}

func (p *Publisher) publish(ctx context.Context, eventType string, booking *model.Booking) error {
	if p == nil {
		return nil
	}

	msg, err := kafka.NewMessage(booking.ID, eventType, source, BookingEvent{Event: eventType, Booking: booking})
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.log.Debug("published booking event",
		"event", eventType,
		"booking_id", booking.ID,
	)
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.producer.Close()
}
