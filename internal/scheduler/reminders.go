package scheduler

import (
	"fmt"
	"time"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/notify"
)

const (
	// MissedReminderDelay is how long after detection a missed-slot
	// reminder fires.
	MissedReminderDelay = 30 * time.Minute

	// SweepWindowMinutes bounds how long after its minute a missed slot
	// still triggers the generic sweep reminder.
	SweepWindowMinutes = 120

	// SweepReminderID is the stable identifier for the generic
	// still-missed reminder; rescheduling replaces the previous one.
	SweepReminderID = "missed-recitation-reminder"
)

// Notice is an immediate notification request.
type Notice struct {
	Title string
	Body  string
}

// Reminder is a deferred notification request with a stable identifier.
type Reminder struct {
	ID    string
	Slot  domain.TimeOfDay
	Delay time.Duration
	Title string
	Body  string
}

// TimeReachedNotice builds the "it's time" notification for a slot.
func TimeReachedNotice(slot domain.TimeOfDay) Notice {
	return Notice{
		Title: "Recitation Time",
		Body:  fmt.Sprintf("It's time for your %s recitation", slot),
	}
}

// PlanMissedReminders returns one reminder per missed, uncompleted slot
// not yet in the notified set, in chronological order. The caller marks a
// slot notified only after the gateway accepts the request, so a gateway
// failure retries on the next evaluation.
func PlanMissedReminders(snap Snapshot, notified *NotifiedSet) []Reminder {
	var out []Reminder
	for _, view := range snap.Slots {
		if view.Status != domain.StatusMissed || notified.Has(view.Time) {
			continue
		}
		out = append(out, Reminder{
			ID:    notify.MissedID(view.Time.String()),
			Slot:  view.Time,
			Delay: MissedReminderDelay,
			Title: "Recitation Reminder",
			Body:  fmt.Sprintf("You missed the %s recitation. Allah'u'Abha!", view.Time),
		})
	}
	return out
}

// PlanSweep returns the generic still-missed reminder, or nil. It is the
// safety net behind PlanMissedReminders: it only covers missed slots whose
// per-slot reminder never registered (so slots already in the notified set
// never re-fire), and only within the sweep window of the slot's minute.
func PlanSweep(snap Snapshot, notified *NotifiedSet) *Reminder {
	for _, view := range snap.Slots {
		if view.Status != domain.StatusMissed || notified.Has(view.Time) {
			continue
		}
		since := view.Time.MinutesUntil(snap.Now)
		if since <= 0 || since >= SweepWindowMinutes {
			continue
		}
		return &Reminder{
			ID:    SweepReminderID,
			Slot:  view.Time,
			Delay: MissedReminderDelay,
			Title: "Recitation Reminder",
			Body:  "You have a pending recitation. Allah'u'Abha!",
		}
	}
	return nil
}
