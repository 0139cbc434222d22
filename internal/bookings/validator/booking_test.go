package validator

import (
	"strings"
	"testing"

	"tablebook/pkg/config"
	"tablebook/pkg/logger"
	"tablebook/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	})
}

func validDateTimeBooking() *model.Booking {
	return &model.Booking{
		Name:    "Ana Gomez",
		Contact: "9876543210",
		Guests:  2,
		Date:    "2030-01-01T19:00:00Z",
	}
}

func validPairBooking() *model.Booking {
	return &model.Booking{
		Name:    "Ana Gomez",
		Contact: "9876543210",
		Guests:  2,
		Date:    "2030-01-01",
		Time:    "19:00",
	}
}

func TestValidate_DateTimeSchema(t *testing.T) {
	v := NewBookingValidator(config.SlotSchemaDateTime, testLogger())

	tests := []struct {
		name        string
		mutate      func(b *model.Booking)
		expectValid bool
		wantField   string
	}{
		{"valid booking", func(b *model.Booking) {}, true, ""},
		{"missing name", func(b *model.Booking) { b.Name = "" }, false, "Name"},
		{"name with digits", func(b *model.Booking) { b.Name = "Ana 2" }, false, "Name"},
		{"missing contact", func(b *model.Booking) { b.Contact = "" }, false, "Contact"},
		{"contact too short", func(b *model.Booking) { b.Contact = "12345" }, false, "Contact"},
		{"contact with letters", func(b *model.Booking) { b.Contact = "98765abcde" }, false, "Contact"},
		{"contact with sign", func(b *model.Booking) { b.Contact = "+976543210" }, false, "Contact"},
		{"zero guests", func(b *model.Booking) { b.Guests = 0 }, false, "Guests"},
		{"negative guests", func(b *model.Booking) { b.Guests = -3 }, false, "Guests"},
		{"missing date", func(b *model.Booking) { b.Date = "" }, false, "Date"},
		{"date not RFC3339", func(b *model.Booking) { b.Date = "2030-01-01" }, false, "Date"},
		{"unexpected time field", func(b *model.Booking) { b.Time = "19:00" }, false, "Time"},
		{"past date accepted", func(b *model.Booking) { b.Date = "2001-01-01T12:00:00Z" }, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validDateTimeBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if tt.expectValid {
				if err != nil {
					t.Fatalf("expected valid booking, got error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.wantField != "" && !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error to mention field %q, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_DateTimePairSchema(t *testing.T) {
	v := NewBookingValidator(config.SlotSchemaDateTimePair, testLogger())

	tests := []struct {
		name        string
		mutate      func(b *model.Booking)
		expectValid bool
		wantField   string
	}{
		{"valid booking", func(b *model.Booking) {}, true, ""},
		{"missing time", func(b *model.Booking) { b.Time = "" }, false, "Time"},
		{"malformed time", func(b *model.Booking) { b.Time = "7pm" }, false, "Time"},
		{"hour out of range", func(b *model.Booking) { b.Time = "25:00" }, false, "Time"},
		{"date with full instant", func(b *model.Booking) { b.Date = "2030-01-01T19:00:00Z" }, false, "Date"},
		{"malformed date", func(b *model.Booking) { b.Date = "01/01/2030" }, false, "Date"},
		{"midnight slot", func(b *model.Booking) { b.Time = "00:00" }, true, ""},
		{"last slot of day", func(b *model.Booking) { b.Time = "23:59" }, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := validPairBooking()
			tt.mutate(booking)

			err := v.Validate(booking)
			if tt.expectValid {
				if err != nil {
					t.Fatalf("expected valid booking, got error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if tt.wantField != "" && !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("expected error to mention field %q, got: %v", tt.wantField, err)
			}
		})
	}
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	v := NewBookingValidator(config.SlotSchemaDateTime, testLogger())

	booking := &model.Booking{}
	err := v.Validate(booking)
	if err == nil {
		t.Fatal("expected validation error for empty booking")
	}

	var verrs ValidationErrors
	ok := false
	if e, isVErrs := err.(ValidationErrors); isVErrs {
		verrs = e
		ok = true
	}
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	for _, field := range []string{"Name", "Contact", "Guests", "Date"} {
		found := false
		for _, fe := range verrs {
			if fe.Field == field {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected a validation error for field %s, got: %v", field, verrs)
		}
	}
}
