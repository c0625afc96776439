package scheduler

import "github.com/dkalonji/tasbih/internal/domain"

// TransitionKind distinguishes the boundary crossings that drive
// notifications.
type TransitionKind string

const (
	// TimeReached fires when a slot's scheduled minute arrives. It is
	// derived from the Upcoming→Active or Upcoming→Missed boundary
	// crossing between two consecutive snapshots, so a tick slower than
	// one minute still observes it instead of skipping straight past.
	TimeReached TransitionKind = "time_reached"

	// BecameMissed fires when a slot passes its minute uncompleted.
	BecameMissed TransitionKind = "became_missed"
)

// Transition is one slot boundary crossing between two snapshots.
type Transition struct {
	Kind TransitionKind
	Slot domain.TimeOfDay
}

// Diff compares two consecutive snapshots of the same day and returns the
// boundary crossings. prev may be nil (first evaluation of the day or
// after a config change); in that case only slots observed exactly on
// their minute produce TimeReached, and already-missed slots produce
// BecameMissed so reminder planning can pick them up.
func Diff(prev *Snapshot, next Snapshot) []Transition {
	var out []Transition
	for _, view := range next.Slots {
		var prevStatus domain.SlotStatus
		known := false
		if prev != nil && prev.Date == next.Date {
			prevStatus, known = prev.StatusFor(view.Time)
		}

		switch view.Status {
		case domain.StatusActive:
			if !known || prevStatus == domain.StatusUpcoming {
				out = append(out, Transition{Kind: TimeReached, Slot: view.Time})
			}
		case domain.StatusMissed:
			if known && prevStatus == domain.StatusUpcoming {
				// Crossed both boundaries between ticks: the arrival
				// notice still fires, then the miss.
				out = append(out, Transition{Kind: TimeReached, Slot: view.Time})
				out = append(out, Transition{Kind: BecameMissed, Slot: view.Time})
			} else if !known || prevStatus == domain.StatusActive {
				out = append(out, Transition{Kind: BecameMissed, Slot: view.Time})
			}
		}
	}
	return out
}
