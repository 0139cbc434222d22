package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrSlotTaken is returned when the slot key already holds a booking,
	// whether caught by the pre-insert check or by the unique index.
	ErrSlotTaken = errors.New("slot already booked")
)
