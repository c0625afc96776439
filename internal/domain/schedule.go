package domain

import "fmt"

// TapsPerRecitation is the fixed number of taps that completes one recitation.
const TapsPerRecitation = 95

// MinSlotSpacingMinutes is the minimum gap between consecutive active slots.
const MinSlotSpacingMinutes = 120

// Schedule is the user's recitation configuration: the candidate times of
// day, how many of them count each day, and the feedback cue preferences.
type Schedule struct {
	Times        []TimeOfDay
	DailyCount   int
	SoundEnabled bool
	Volume       float64
}

// DefaultSchedule is the first-run configuration: one recitation at 06:00.
func DefaultSchedule() Schedule {
	return Schedule{
		Times:        []TimeOfDay{{Hour: 6}},
		DailyCount:   1,
		SoundEnabled: true,
		Volume:       0.5,
	}
}

// ActiveSubset returns the first DailyCount times in chronological order.
// These are the slots that count for the day; any further configured times
// are inert until DailyCount is raised.
func (s Schedule) ActiveSubset() []TimeOfDay {
	sorted := SortTimes(s.Times)
	if s.DailyCount < len(sorted) {
		sorted = sorted[:s.DailyCount]
	}
	return sorted
}

// Validate checks the schedule invariants: at least one time, all times
// distinct, 1 <= DailyCount <= len(Times), volume in [0,1], and consecutive
// active slots at least MinSlotSpacingMinutes apart. All violations are
// reported wrapped in ErrInvalidSchedule.
func (s Schedule) Validate() error {
	if len(s.Times) == 0 {
		return fmt.Errorf("%w: at least one recitation time is required", ErrInvalidSchedule)
	}
	if s.DailyCount < 1 || s.DailyCount > len(s.Times) {
		return fmt.Errorf("%w: daily count %d must be between 1 and %d",
			ErrInvalidSchedule, s.DailyCount, len(s.Times))
	}
	if s.Volume < 0 || s.Volume > 1 {
		return fmt.Errorf("%w: volume %.2f must be between 0 and 1", ErrInvalidSchedule, s.Volume)
	}
	for _, t := range s.Times {
		if !t.Valid() {
			return fmt.Errorf("%w: time %s is out of range", ErrInvalidSchedule, t)
		}
	}

	sorted := SortTimes(s.Times)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].MinuteOfDay() == sorted[i-1].MinuteOfDay() {
			return fmt.Errorf("%w: duplicate recitation time %s", ErrInvalidSchedule, sorted[i])
		}
	}

	// Spacing is enforced over the active subset only; inert tail times
	// may sit closer together until DailyCount makes them count.
	active := s.ActiveSubset()
	for i := 1; i < len(active); i++ {
		gap := active[i-1].MinutesUntil(active[i])
		if gap < MinSlotSpacingMinutes {
			return fmt.Errorf("%w: %s and %s are only %d minutes apart (minimum %d)",
				ErrInvalidSchedule, active[i-1], active[i], gap, MinSlotSpacingMinutes)
		}
	}
	return nil
}
