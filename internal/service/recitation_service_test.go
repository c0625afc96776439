package service

import (
	"context"
	"testing"
	"time"

	"github.com/dkalonji/tasbih/internal/db"
	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/repository"
	"github.com/dkalonji/tasbih/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      RecitationService
	settings SettingsService
	history  HistoryService
	gateway  *testutil.MemoryGateway
	clk      *testutil.FakeClock
	state    repository.AppStateRepo
}

func newFixture(t *testing.T, date, timeOfDay string) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)

	clk := testutil.NewFakeClock(date, timeOfDay)
	gateway := testutil.NewMemoryGateway()
	state := repository.NewSQLiteAppStateRepo(database)

	svc := NewRecitationService(RecitationDeps{
		Settings:    repository.NewSQLiteSettingsRepo(database),
		Completions: repository.NewSQLiteCompletionRepo(database),
		Sessions:    repository.NewSQLiteSessionRepo(database),
		State:       state,
		UoW:         db.NewUnitOfWork(database),
		Clock:       clk,
		Gateway:     gateway,
	})

	return &fixture{
		svc:      svc,
		settings: NewSettingsService(repository.NewSQLiteSettingsRepo(database), svc, nil, nil),
		history:  NewHistoryService(repository.NewSQLiteSessionRepo(database)),
		gateway:  gateway,
		clk:      clk,
		state:    state,
	}
}

func (f *fixture) saveSchedule(t *testing.T, count int, times ...string) {
	t.Helper()
	parsed, err := domain.ParseTimes(times)
	require.NoError(t, err)
	s := domain.Schedule{Times: parsed, DailyCount: count, SoundEnabled: true, Volume: 0.5}
	require.NoError(t, f.settings.Save(context.Background(), s))
}

// Scenario: one slot at 09:00, evaluated exactly at 09:00: the slot is
// active, current, and the arrival notice fires once.
func TestEvaluate_ActiveSlotNotifiesOnce(t *testing.T) {
	f := newFixture(t, "2026-03-01", "08:59")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	f.clk.Set("2026-03-01", "09:00")
	report, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)

	require.NotNil(t, report.Snapshot.Current)
	assert.Equal(t, "09:00", report.Snapshot.Current.String())
	status, _ := report.Snapshot.StatusFor(domain.MustTimeOfDay("09:00"))
	assert.Equal(t, domain.StatusActive, status)
	assert.Equal(t, []string{"Recitation Time"}, f.gateway.ImmediateTitles())

	// Second evaluation within the same minute: no duplicate notice.
	_, err = f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Len(t, f.gateway.Immediate, 1)
}

// Scenario: slot 09:00, now 10:30, nothing completed. Status is missed,
// a reminder is scheduled ~30 minutes out, and the notified set guards
// against duplicates.
func TestEvaluate_MissedSlotSchedulesReminder(t *testing.T) {
	f := newFixture(t, "2026-03-01", "10:30")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	report, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)

	status, _ := report.Snapshot.StatusFor(domain.MustTimeOfDay("09:00"))
	assert.Equal(t, domain.StatusMissed, status)
	require.True(t, f.gateway.HasScheduled("missed-09:00"))

	pending, err := f.gateway.ListScheduled()
	require.NoError(t, err)
	until := time.Until(pending[0].FireAt)
	assert.Greater(t, until, 29*time.Minute)
	assert.Less(t, until, 31*time.Minute)

	// Re-evaluating must not schedule a second reminder.
	before := len(f.gateway.Scheduled)
	_, err = f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Len(t, f.gateway.Scheduled, before)
}

func TestEvaluate_ReminderRetriedAfterGatewayFailure(t *testing.T) {
	f := newFixture(t, "2026-03-01", "08:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	f.clk.Set("2026-03-01", "10:30")
	f.gateway.FailScheduleAt = assert.AnError
	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err, "gateway failure must not fail evaluation")
	assert.False(t, f.gateway.HasScheduled("missed-09:00"))

	f.gateway.FailScheduleAt = nil
	_, err = f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.True(t, f.gateway.HasScheduled("missed-09:00"), "not-yet-notified slot retries")
}

func TestEvaluate_MissedPriorityEarliestFirst(t *testing.T) {
	f := newFixture(t, "2026-03-01", "16:00")
	f.saveSchedule(t, 2, "09:00", "15:00")

	report, err := f.svc.Evaluate(context.Background())
	require.NoError(t, err)

	require.NotNil(t, report.Snapshot.Current)
	assert.Equal(t, "09:00", report.Snapshot.Current.String())
}

// Scenario: 95 taps complete the slot, write one ledger record and one
// session, reset the counter, and report the day done.
func TestTap_NinetyFiveTapsCompleteTheSlot(t *testing.T) {
	f := newFixture(t, "2026-03-01", "09:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	var last TapResult
	for i := 1; i <= domain.TapsPerRecitation; i++ {
		result, err := f.svc.Tap(ctx)
		require.NoError(t, err, "tap %d", i)
		if i < domain.TapsPerRecitation {
			assert.Equal(t, i, result.Count)
			assert.Equal(t, domain.TapsPerRecitation-i, result.Remaining)
			assert.False(t, result.Completed)
		}
		last = result
	}

	assert.True(t, last.Completed)
	assert.True(t, last.FinalSlot, "only slot of the day")
	assert.Nil(t, last.Next)

	report, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Nil(t, report.Snapshot.Current)
	assert.True(t, report.Snapshot.AllDone())
	assert.Equal(t, 0, report.TapCount)

	sessions, err := f.history.Recent(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "09:00", sessions[0].Scheduled.String())
	assert.Equal(t, domain.TapsPerRecitation, sessions[0].Taps)
}

func TestTap_NoActiveSlot(t *testing.T) {
	f := newFixture(t, "2026-03-01", "07:00")
	f.saveSchedule(t, 1, "09:00")

	_, err := f.svc.Tap(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSlot)
}

func TestTap_CompletionReportsNextPendingSlot(t *testing.T) {
	f := newFixture(t, "2026-03-01", "16:00")
	f.saveSchedule(t, 2, "09:00", "15:00")
	ctx := context.Background()

	var last TapResult
	for i := 0; i < domain.TapsPerRecitation; i++ {
		var err error
		last, err = f.svc.Tap(ctx)
		require.NoError(t, err)
	}

	assert.True(t, last.Completed)
	assert.Equal(t, "09:00", last.Slot.String())
	assert.False(t, last.FinalSlot)
	require.NotNil(t, last.Next)
	assert.Equal(t, "15:00", last.Next.String(), "the other missed slot becomes current")
}

// Completion round-trip: a completed slot is never reselected the same day.
func TestRecordCompletion_RoundTrip(t *testing.T) {
	f := newFixture(t, "2026-03-01", "09:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()
	nine := domain.MustTimeOfDay("09:00")

	require.NoError(t, f.svc.RecordCompletion(ctx, nine))

	report, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Nil(t, report.Snapshot.Current)
	status, _ := report.Snapshot.StatusFor(nine)
	assert.Equal(t, domain.StatusCompleted, status)
}

func TestRecordCompletion_InvalidSlot(t *testing.T) {
	f := newFixture(t, "2026-03-01", "09:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	err := f.svc.RecordCompletion(ctx, domain.MustTimeOfDay("13:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidSlot, "slot outside today's subset")

	require.NoError(t, f.svc.RecordCompletion(ctx, domain.MustTimeOfDay("09:00")))
	err = f.svc.RecordCompletion(ctx, domain.MustTimeOfDay("09:00"))
	assert.ErrorIs(t, err, domain.ErrInvalidSlot, "already completed")
}

// Scenario: 09:00 was missed and 15:00 is active when its arrival notice
// fires. Completing 09:00 must not re-fire the 15:00 notice on the next
// evaluation; the notice stays once per slot per day.
func TestRecordCompletion_DoesNotRepeatArrivalNotice(t *testing.T) {
	f := newFixture(t, "2026-03-01", "15:00")
	f.saveSchedule(t, 2, "09:00", "15:00")
	ctx := context.Background()

	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"Recitation Time"}, f.gateway.ImmediateTitles())

	require.NoError(t, f.svc.RecordCompletion(ctx, domain.MustTimeOfDay("09:00")))

	_, err = f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Recitation Time"}, f.gateway.ImmediateTitles())
}

func TestRecordCompletion_CancelsPendingReminder(t *testing.T) {
	f := newFixture(t, "2026-03-01", "10:30")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	require.True(t, f.gateway.HasScheduled("missed-09:00"))

	require.NoError(t, f.svc.RecordCompletion(ctx, domain.MustTimeOfDay("09:00")))
	assert.False(t, f.gateway.HasScheduled("missed-09:00"))
}

// Scenario: the day rolls over: ledger empties, the completed slot is
// upcoming again, pending reminders are cancelled.
func TestEvaluate_DayRollover(t *testing.T) {
	f := newFixture(t, "2026-03-01", "09:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()
	nine := domain.MustTimeOfDay("09:00")

	require.NoError(t, f.svc.RecordCompletion(ctx, nine))

	f.clk.Set("2026-03-02", "06:30")
	report, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, report.Snapshot.CompletedCount, "ledger empty on the new day")
	status, _ := report.Snapshot.StatusFor(nine)
	assert.Equal(t, domain.StatusUpcoming, status)

	stored, err := f.state.Get(ctx, repository.KeyLastResetDate)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", stored)
}

func TestRollover_Idempotent(t *testing.T) {
	f := newFixture(t, "2026-03-01", "10:30")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	require.True(t, f.gateway.HasScheduled("missed-09:00"))

	require.NoError(t, f.svc.Rollover(ctx, "2026-03-02"))
	assert.False(t, f.gateway.HasScheduled("missed-09:00"), "rollover cancels pending reminders")
	cancelled := len(f.gateway.Cancelled)

	// Second rollover to the same date is a no-op.
	require.NoError(t, f.svc.Rollover(ctx, "2026-03-02"))
	assert.Len(t, f.gateway.Cancelled, cancelled)
}

func TestRollover_ResetsNotifiedSet(t *testing.T) {
	f := newFixture(t, "2026-03-01", "10:30")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	require.True(t, f.gateway.HasScheduled("missed-09:00"))

	// Next day, same time of day: the slot is missed again and a fresh
	// reminder must be allowed.
	f.clk.Set("2026-03-02", "10:30")
	_, err = f.svc.Evaluate(ctx)
	require.NoError(t, err)
	assert.True(t, f.gateway.HasScheduled("missed-09:00"))
}

func TestSweep_SchedulesGenericReminderOnlyForUnnotifiedSlots(t *testing.T) {
	f := newFixture(t, "2026-03-01", "10:00")
	f.saveSchedule(t, 1, "09:00")
	ctx := context.Background()

	// Per-slot reminder failed to register, so the sweep covers the slot.
	f.gateway.FailScheduleAt = assert.AnError
	_, err := f.svc.Evaluate(ctx)
	require.NoError(t, err)
	f.gateway.FailScheduleAt = nil

	// Sweep itself first re-evaluates, which registers the per-slot
	// reminder and marks the slot notified, so the generic reminder
	// stays quiet.
	require.NoError(t, f.svc.Sweep(ctx))
	assert.True(t, f.gateway.HasScheduled("missed-09:00"))
	assert.False(t, f.gateway.HasScheduled("missed-recitation-reminder"))
}

func TestEvaluate_DefaultsWhenNoSettingsStored(t *testing.T) {
	f := newFixture(t, "2026-03-01", "05:00")

	report, err := f.svc.Evaluate(context.Background())
	require.NoError(t, err)

	require.Len(t, report.Snapshot.Slots, 1)
	assert.Equal(t, "06:00", report.Snapshot.Slots[0].Time.String(), "default schedule applies")
}
