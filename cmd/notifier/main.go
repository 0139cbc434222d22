package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"tablebook/internal/bookings/events"
	"tablebook/pkg/kafka"
	kafka_config "tablebook/pkg/kafka/config"
	"tablebook/pkg/logger"
)

const ServiceName = "notifier"

// The notifier consumes booking events and records them. It stands in for a
// real notification channel (mail, SMS); swapping the handler body is all a
// real channel needs.
func main() {
	log := logger.New(logger.Config{Service: ServiceName})

	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		log.Fatal("KAFKA_BROKERS must be set for the notifier")
	}
	if err := kafkaCfg.Validate(); err != nil {
		log.Fatal("Invalid Kafka configuration", "error", err)
	}

	consumer, err := kafka.NewConsumer(kafkaCfg, kafkaCfg.BookingTopic, kafkaCfg.ConsumerGroupID, handleEvent(log))
	if err != nil {
		log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Notifier started", "topic", kafkaCfg.BookingTopic, "group", kafkaCfg.ConsumerGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("Consumer stopped with error", "error", err)
	}

	log.Info("Notifier stopped")
}

func handleEvent(log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		var event events.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			// A malformed event is not retryable; log and commit past it.
			log.Error("Failed to decode booking event", "error", err, "event_id", msg.EventID())
			return nil
		}

		switch event.Event {
		case events.EventBookingCreated:
			log.Info("Booking confirmed",
				"booking_id", event.Booking.ID,
				"name", event.Booking.Name,
				"guests", event.Booking.Guests,
				"slot", event.Booking.SlotKey(),
			)
		case events.EventBookingDeleted:
			log.Info("Booking cancelled", "booking_id", event.Booking.ID)
		default:
			log.Warn("Unknown booking event", "event", event.Event, "event_id", msg.EventID())
		}

		return nil
	}
}
