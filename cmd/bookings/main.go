package main

import (
	"context"
	"time"

	"tablebook/internal/bookings/events"
	"tablebook/internal/bookings/handler"
	"tablebook/internal/bookings/repository"
	"tablebook/internal/bookings/service"
	"tablebook/internal/bookings/validator"
	"tablebook/pkg/app"
	"tablebook/pkg/config"
	"tablebook/pkg/kafka"
	kafka_config "tablebook/pkg/kafka/config"
	"tablebook/web"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	publisher := initPublisher(cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewBookingHandler(bookingService, cfg.Log), web.Handler())
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher *events.Publisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.SlotSchema, cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := bookingRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure booking indexes", "error", err)
	}

	bookingService := service.NewBookingService(
		bookingRepo,
		bookingValidator,
		publisher,
		cfg.Log,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) *events.Publisher {
	kafkaCfg := kafka_config.Load()
	if !kafkaCfg.Enabled() {
		cfg.Log.Info("Kafka brokers not configured, booking events disabled")
		return nil
	}
	if err := kafkaCfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, kafkaCfg.BookingTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Booking events enabled", "topic", kafkaCfg.BookingTopic)
	return events.NewPublisher(producer, cfg.Log)
}
