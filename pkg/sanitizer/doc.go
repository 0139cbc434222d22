// Package sanitizer normalizes guest-supplied booking fields before
// validation and storage.
//
// All functions are idempotent and never return errors; malformed input is
// passed through so that validation can reject it with a field-level message.
package sanitizer
