package scheduler

import (
	"testing"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapAt(sched domain.Schedule, ledger domain.Ledger, now string) Snapshot {
	return TakeSnapshot(sched, ledger, day, domain.MustTimeOfDay(now))
}

func TestDiff_TimeReachedOnExactMinute(t *testing.T) {
	sched := scheduleOf(1, "09:00")
	ledger := domain.NewLedger(day)

	prev := snapAt(sched, ledger, "08:59")
	next := snapAt(sched, ledger, "09:00")

	got := Diff(&prev, next)

	require.Len(t, got, 1)
	assert.Equal(t, TimeReached, got[0].Kind)
	assert.Equal(t, "09:00", got[0].Slot.String())
}

func TestDiff_TimeReachedOnlyOnce(t *testing.T) {
	sched := scheduleOf(1, "09:00")
	ledger := domain.NewLedger(day)

	// Two evaluations within the active minute: second diff is empty.
	prev := snapAt(sched, ledger, "09:00")
	next := snapAt(sched, ledger, "09:00")

	assert.Empty(t, Diff(&prev, next))
}

func TestDiff_SlowTickStillReachesTime(t *testing.T) {
	// The tick skipped the exact minute entirely; the boundary crossing
	// must still produce the arrival notice plus the miss.
	sched := scheduleOf(1, "09:00")
	ledger := domain.NewLedger(day)

	prev := snapAt(sched, ledger, "08:59")
	next := snapAt(sched, ledger, "09:02")

	got := Diff(&prev, next)

	require.Len(t, got, 2)
	assert.Equal(t, TimeReached, got[0].Kind)
	assert.Equal(t, BecameMissed, got[1].Kind)
}

func TestDiff_ActiveToMissed(t *testing.T) {
	sched := scheduleOf(1, "09:00")
	ledger := domain.NewLedger(day)

	prev := snapAt(sched, ledger, "09:00")
	next := snapAt(sched, ledger, "09:01")

	got := Diff(&prev, next)

	require.Len(t, got, 1)
	assert.Equal(t, BecameMissed, got[0].Kind)
}

func TestDiff_NoPrevSnapshot(t *testing.T) {
	sched := scheduleOf(2, "09:00", "15:00")
	ledger := domain.NewLedger(day)

	// First evaluation at 09:00: the 09:00 slot is observed on its
	// minute so TimeReached fires; 15:00 stays silent.
	got := Diff(nil, snapAt(sched, ledger, "09:00"))
	require.Len(t, got, 1)
	assert.Equal(t, TimeReached, got[0].Kind)

	// First evaluation at 16:00: both slots are already missed.
	got = Diff(nil, snapAt(sched, ledger, "16:00"))
	require.Len(t, got, 2)
	for _, tr := range got {
		assert.Equal(t, BecameMissed, tr.Kind)
	}
}

func TestDiff_IgnoresPrevFromAnotherDay(t *testing.T) {
	sched := scheduleOf(1, "09:00")
	ledger := domain.NewLedger(day)

	prev := TakeSnapshot(sched, ledger, "2026-02-28", domain.MustTimeOfDay("23:59"))
	next := snapAt(sched, ledger, "09:00")

	got := Diff(&prev, next)

	require.Len(t, got, 1, "stale snapshot must be treated as unknown")
	assert.Equal(t, TimeReached, got[0].Kind)
}

func TestDiff_CompletedSlotProducesNothing(t *testing.T) {
	sched := scheduleOf(1, "09:00")

	prev := snapAt(sched, domain.NewLedger(day), "09:00")
	next := snapAt(sched, completedLedger(day, "09:00"), "09:01")

	assert.Empty(t, Diff(&prev, next))
}
