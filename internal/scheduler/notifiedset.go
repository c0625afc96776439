package scheduler

import "github.com/dkalonji/tasbih/internal/domain"

// NotifiedSet tracks which slots already received a missed-recitation
// reminder today, so reminders fire at most once per slot per day.
// Cleared on rollover.
type NotifiedSet struct {
	slots map[domain.TimeOfDay]bool
}

// NewNotifiedSet creates an empty NotifiedSet.
func NewNotifiedSet() *NotifiedSet {
	return &NotifiedSet{slots: make(map[domain.TimeOfDay]bool)}
}

// Has reports whether the slot was already reminded for.
func (n *NotifiedSet) Has(slot domain.TimeOfDay) bool {
	return n.slots[slot]
}

// Add marks the slot as reminded for.
func (n *NotifiedSet) Add(slot domain.TimeOfDay) {
	n.slots[slot] = true
}

// Clear empties the set.
func (n *NotifiedSet) Clear() {
	n.slots = make(map[domain.TimeOfDay]bool)
}

// Len returns the number of reminded slots.
func (n *NotifiedSet) Len() int {
	return len(n.slots)
}
