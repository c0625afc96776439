// Package scheduler holds the recitation state machine: pure derivations
// from schedule + ledger + current time. Nothing here touches storage or
// notifications; the service layer feeds it and acts on its output.
package scheduler

import (
	"github.com/dkalonji/tasbih/internal/domain"
)

// SlotView is one scheduled slot with its derived status.
type SlotView struct {
	Time   domain.TimeOfDay
	Status domain.SlotStatus
}

// Snapshot is the full derived state of the day at one instant.
type Snapshot struct {
	Date  string
	Now   domain.TimeOfDay
	Slots []SlotView

	// Current is the single slot eligible for tap input: the earliest
	// missed slot if any exist, else the active slot, else nil.
	Current *domain.TimeOfDay

	// Next is the earliest upcoming slot, nil when none remain.
	Next *domain.TimeOfDay

	CompletedCount int
	DailyCount     int
}

// AllDone reports whether every active slot is completed for the day.
func (s Snapshot) AllDone() bool {
	return s.CompletedCount >= s.DailyCount
}

// StatusOf derives the status of one slot. Completed is terminal for the
// day; otherwise the slot is active on the exact minute, missed after it,
// and upcoming before it.
func StatusOf(slot domain.TimeOfDay, now domain.TimeOfDay, ledger domain.Ledger) domain.SlotStatus {
	if ledger.Completed(slot) {
		return domain.StatusCompleted
	}
	switch {
	case now.MinuteOfDay() == slot.MinuteOfDay():
		return domain.StatusActive
	case now.After(slot):
		return domain.StatusMissed
	default:
		return domain.StatusUpcoming
	}
}

// TakeSnapshot evaluates every slot in the schedule's active subset, in
// chronological order, and picks the current and next slots.
//
// Missed slots take priority for Current, earliest first: the user settles
// the oldest debt before anything else. At most one slot is ever current.
func TakeSnapshot(schedule domain.Schedule, ledger domain.Ledger, date string, now domain.TimeOfDay) Snapshot {
	snap := Snapshot{
		Date:       date,
		Now:        now,
		DailyCount: schedule.DailyCount,
	}

	var firstMissed, firstActive, firstUpcoming *domain.TimeOfDay
	for _, slot := range schedule.ActiveSubset() {
		status := StatusOf(slot, now, ledger)
		snap.Slots = append(snap.Slots, SlotView{Time: slot, Status: status})

		slot := slot
		switch status {
		case domain.StatusCompleted:
			snap.CompletedCount++
		case domain.StatusMissed:
			if firstMissed == nil {
				firstMissed = &slot
			}
		case domain.StatusActive:
			if firstActive == nil {
				firstActive = &slot
			}
		case domain.StatusUpcoming:
			if firstUpcoming == nil {
				firstUpcoming = &slot
			}
		}
	}

	switch {
	case firstMissed != nil:
		snap.Current = firstMissed
	case firstActive != nil:
		snap.Current = firstActive
	}
	snap.Next = firstUpcoming
	return snap
}

// StatusFor returns the status of the given slot in the snapshot, or
// ("", false) when the slot is not part of the day's active subset.
func (s Snapshot) StatusFor(slot domain.TimeOfDay) (domain.SlotStatus, bool) {
	for _, v := range s.Slots {
		if v.Time == slot {
			return v.Status, true
		}
	}
	return "", false
}
