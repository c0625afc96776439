package domain

// SlotStatus is the derived state of one scheduled slot relative to the
// current time and the day's ledger. It is never stored; callers recompute
// it on every query.
type SlotStatus string

const (
	StatusUpcoming  SlotStatus = "upcoming"
	StatusActive    SlotStatus = "active"
	StatusMissed    SlotStatus = "missed"
	StatusCompleted SlotStatus = "completed"
)

func (s SlotStatus) String() string {
	return string(s)
}
