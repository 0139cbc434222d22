package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"tablebook/pkg/config"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

var timeSlotRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// BookingValidator checks bookings server-side. Field format rules the
// browser client also applies (digit-free name, 10-digit contact, guests
// floor) are enforced here as well so the API cannot be bypassed with curl.
// Future-dated slots are deliberately NOT required: the store keeps past
// bookings and the client hides them at render time.
type BookingValidator struct {
	validate *validator.Validate
	schema   string
	logger   *logger.Logger
}

func NewBookingValidator(slotSchema string, log *logger.Logger) *BookingValidator {
	v := validator.New()

	if err := v.RegisterValidation("no_digits", validateNoDigits); err != nil {
		log.Fatal("Failed to register 'no_digits' validator", "error", err)
	}
	if err := v.RegisterValidation("digits", validateDigitsOnly); err != nil {
		log.Fatal("Failed to register 'digits' validator", "error", err)
	}

	return &BookingValidator{
		validate: v,
		schema:   slotSchema,
		logger:   log,
	}
}

func validateNoDigits(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func validateDigitsOnly(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	return v.validateSlot(booking)
}

func (v *BookingValidator) validateSlot(booking *model.Booking) error {
	switch v.schema {
	case config.SlotSchemaDateTimePair:
		if _, err := time.Parse("2006-01-02", booking.Date); err != nil {
			return ValidationErrors{
				ValidationError{Field: "Date", Message: "date must be in YYYY-MM-DD format"},
			}
		}
		if booking.Time == "" {
			return ValidationErrors{
				ValidationError{Field: "Time", Message: "time is required"},
			}
		}
		if !timeSlotRegex.MatchString(booking.Time) {
			return ValidationErrors{
				ValidationError{Field: "Time", Message: "time must be in HH:MM format (00:00-23:59)"},
			}
		}
	default:
		if _, err := time.Parse(time.RFC3339, booking.Date); err != nil {
			return ValidationErrors{
				ValidationError{Field: "Date", Message: "date must be an RFC3339 date-time"},
			}
		}
		if booking.Time != "" {
			return ValidationErrors{
				ValidationError{Field: "Time", Message: "time is not accepted when date carries the full instant"},
			}
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "len":
			message = fmt.Sprintf("%s must be exactly %s characters", err.Field(), err.Param())
		case "digits":
			message = fmt.Sprintf("%s must contain only digits", err.Field())
		case "no_digits":
			message = fmt.Sprintf("%s must not contain digits", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
