package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "tablebook/internal/bookings/errors"
	"tablebook/internal/bookings/repository"
	"tablebook/internal/bookings/validator"
	apperrors "tablebook/pkg/errors"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
	"tablebook/pkg/sanitizer"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	List(ctx context.Context) ([]*model.Booking, error)
	Delete(ctx context.Context, id string) error
}

// EventPublisher is the slice of events.Publisher the service needs. Events
// are best-effort: publish failures are logged, never surfaced to clients.
type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking) error
	BookingDeleted(ctx context.Context, booking *model.Booking) error
}

type bookingService struct {
	repo      repository.BookingRepository
	validator *validator.BookingValidator
	publisher EventPublisher
	log       *logger.Logger
}

func NewBookingService(repo repository.BookingRepository, v *validator.BookingValidator, publisher EventPublisher, log *logger.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		validator: v,
		publisher: publisher,
		log:       log,
	}
}

// Create sanitizes and validates the booking, then inserts it inside a
// transaction so the slot existence check and the insert are atomic. The
// unique slot index catches whatever races slip past the check.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.ID = ""
	booking.Name = sanitizer.NormalizeName(booking.Name)
	booking.Contact = sanitizer.NormalizeContact(booking.Contact)

	if err := s.validator.Validate(booking); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, apperrors.Validation("booking validation failed", map[string]any{"errors": verrs})
		}
		return nil, apperrors.Validation(err.Error(), nil)
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		_, err := s.repo.FindBySlot(sessCtx, booking.Date, booking.Time)
		if err == nil {
			return bookingserrors.ErrSlotTaken
		}
		if !errors.Is(err, bookingserrors.ErrNotFound) {
			return err
		}
		return s.repo.Create(sessCtx, booking)
	})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrSlotTaken) {
			return nil, apperrors.Conflict("Booking already exists for this slot")
		}
		s.log.Error("failed to create booking", "error", err, "slot", booking.SlotKey())
		return nil, apperrors.Internal("failed to create booking", err)
	}

	s.log.Info("booking created",
		"booking_id", booking.ID,
		"slot", booking.SlotKey(),
		"guests", booking.Guests,
	)

	if s.publisher == nil {
		return booking, nil
	}
	if err := s.publisher.BookingCreated(ctx, booking); err != nil {
		s.log.Warn("failed to publish booking created event", "error", err, "booking_id", booking.ID)
	}

	return booking, nil
}

func (s *bookingService) List(ctx context.Context) ([]*model.Booking, error) {
	bookings, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to list bookings", "error", err)
		return nil, apperrors.Internal("failed to list bookings", err)
	}

	if bookings == nil {
		bookings = []*model.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return apperrors.InvalidInput("invalid booking ID")
		case errors.Is(err, bookingserrors.ErrNotFound):
			return apperrors.NotFoundWithID("booking", id)
		default:
			s.log.Error("failed to delete booking", "error", err, "booking_id", id)
			return apperrors.Internal("failed to delete booking", err)
		}
	}

	s.log.Info("booking deleted", "booking_id", id)

	if s.publisher != nil {
		if err := s.publisher.BookingDeleted(ctx, &model.Booking{ID: id}); err != nil {
			s.log.Warn("failed to publish booking deleted event", "error", err, "booking_id", id)
		}
	}

	return nil
}
