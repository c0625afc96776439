package domain

import "errors"

var (
	// ErrInvalidSchedule is returned when a schedule fails validation.
	// The previous schedule remains in effect.
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrInvalidSlot is returned when completing a slot that is not part
	// of today's active subset or is already completed.
	ErrInvalidSlot = errors.New("invalid slot")

	// ErrNoActiveSlot is returned when a tap arrives with no current slot.
	ErrNoActiveSlot = errors.New("no active slot")
)
