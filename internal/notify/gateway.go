// Package notify defines the notification gateway contract. The scheduler
// decides when to notify; delivery belongs to the gateway implementation.
// All gateway failures are logged and swallowed by callers.
package notify

import "time"

// Pending describes a scheduled, not-yet-delivered notification.
type Pending struct {
	ID     string
	FireAt time.Time
	Title  string
	Body   string
}

// Gateway accepts notification requests. Identifiers are deterministic per
// slot ("missed-<HH:MM>") so a reschedule or a rollover can cancel exactly
// the notifications it supersedes.
type Gateway interface {
	SendImmediate(title, body string) error
	ScheduleAt(id string, fireAt time.Time, title, body string) error
	Cancel(id string) error
	ListScheduled() ([]Pending, error)
}

// MissedID returns the reminder identifier for a slot, e.g. "missed-09:00".
func MissedID(slot string) string {
	return "missed-" + slot
}
