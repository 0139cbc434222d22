package model

import (
	"time"
)

// Booking is a single reserved table slot. Bookings are created and deleted,
// never updated in place.
//
// Date carries an RFC3339 instant when the service runs with the combined
// slot schema, or a YYYY-MM-DD day when it runs with the split date+time
// schema; in the split schema Time holds the HH:MM slot. Schema-dependent
// rules live in internal/bookings/validator.
type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,max=100,no_digits"`
	Contact   string    `json:"contact" bson:"contact" validate:"required,len=10,digits"`
	Guests    int       `json:"guests" bson:"guests" validate:"required,min=1,max=50"`
	Date      string    `json:"date" bson:"date" validate:"required"`
	Time      string    `json:"time,omitempty" bson:"time,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty" validate:"omitempty"`
}

// SlotKey is the value the uniqueness invariant is keyed on: the date alone,
// or date and time joined when the split schema is active.
func (b *Booking) SlotKey() string {
	if b.Time == "" {
		return b.Date
	}
	return b.Date + " " + b.Time
}
