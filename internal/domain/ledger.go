package domain

import "fmt"

// CompletionRecord marks one scheduled slot as completed on a given date.
// Immutable once created.
type CompletionRecord struct {
	Date      string // "YYYY-MM-DD" in the reference zone
	Scheduled TimeOfDay
	Actual    TimeOfDay
}

// Ledger is the per-day record of completed slots. All records share Date;
// no two records share a scheduled time. It is created empty on first use
// of a date and wholly cleared at rollover.
type Ledger struct {
	Date    string
	Records []CompletionRecord
}

// NewLedger creates an empty ledger for the given date.
func NewLedger(date string) Ledger {
	return Ledger{Date: date}
}

// Completed reports whether the given scheduled time has a record.
func (l Ledger) Completed(scheduled TimeOfDay) bool {
	for _, r := range l.Records {
		if r.Scheduled == scheduled {
			return true
		}
	}
	return false
}

// Add appends a completion record. It rejects records for another date and
// duplicate scheduled times.
func (l *Ledger) Add(rec CompletionRecord) error {
	if rec.Date != l.Date {
		return fmt.Errorf("record date %s does not match ledger date %s", rec.Date, l.Date)
	}
	if l.Completed(rec.Scheduled) {
		return fmt.Errorf("%w: %s is already completed", ErrInvalidSlot, rec.Scheduled)
	}
	l.Records = append(l.Records, rec)
	return nil
}
