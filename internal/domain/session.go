package domain

// SessionHistoryCap bounds the stored session history.
const SessionHistoryCap = 10

// Session is one completed recitation in the history log: when it was
// scheduled, when it actually finished, and how many taps it took.
// Read-only after creation; scheduling logic never consults it.
type Session struct {
	ID        string
	Date      string
	Scheduled TimeOfDay
	Actual    TimeOfDay
	Taps      int
}

// PushSession prepends s to history (most recent first) and trims the
// result to SessionHistoryCap entries.
func PushSession(history []Session, s Session) []Session {
	out := make([]Session, 0, len(history)+1)
	out = append(out, s)
	out = append(out, history...)
	if len(out) > SessionHistoryCap {
		out = out[:SessionHistoryCap]
	}
	return out
}
