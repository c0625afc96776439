package formatter

import (
	"fmt"
	"strings"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/service"
)

// FormatStatus renders the day board: one line per slot, the current slot
// call-to-action, and the completion tally.
func FormatStatus(report service.StatusReport) string {
	var b strings.Builder
	snap := report.Snapshot

	b.WriteString(Header(fmt.Sprintf("Recitations · %s", snap.Date)))
	b.WriteString("\n")

	for _, slot := range snap.Slots {
		marker := "  "
		if snap.Current != nil && slot.Time == *snap.Current {
			marker = StyleHeader.Render("▸ ")
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, Bold(slot.Time.String()), SlotBadge(slot.Status)))
	}

	b.WriteString("\n")
	b.WriteString(headline(report))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d/%d recitations completed today", snap.CompletedCount, snap.DailyCount)))
	b.WriteString("\n")
	return b.String()
}

// headline is the one-line answer to "what should I be doing right now".
func headline(report service.StatusReport) string {
	snap := report.Snapshot
	switch {
	case snap.Current != nil:
		status, _ := snap.StatusFor(*snap.Current)
		remaining := domain.TapsPerRecitation - report.TapCount
		if status == domain.StatusMissed {
			return StyleRed.Render(fmt.Sprintf("Missed recitation of %s, tap to catch up (%d remaining)", snap.Current, remaining))
		}
		return StyleBlue.Render(fmt.Sprintf("Current recitation: %s (%d taps remaining)", snap.Current, remaining))
	case snap.AllDone():
		return StyleGreen.Render("All recitations completed for today")
	case snap.Next != nil:
		return StyleYellow.Render(fmt.Sprintf("Next recitation at %s", snap.Next))
	default:
		return Dim("No recitations scheduled")
	}
}
