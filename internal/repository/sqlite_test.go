package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/dkalonji/tasbih/internal/domain"
	"github.com/dkalonji/tasbih/internal/repository"
	"github.com/dkalonji/tasbih/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepo_NotFoundOnFreshDB(t *testing.T) {
	repo := repository.NewSQLiteSettingsRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettingsRepo_SaveOverwritesSingletonRow(t *testing.T) {
	repo := repository.NewSQLiteSettingsRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := domain.DefaultSchedule()
	require.NoError(t, repo.Save(ctx, first))

	second := domain.Schedule{
		Times:        []domain.TimeOfDay{domain.MustTimeOfDay("05:30"), domain.MustTimeOfDay("19:00")},
		DailyCount:   2,
		SoundEnabled: true,
		Volume:       0.25,
	}
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"05:30", "19:00"}, domain.FormatTimes(got.Times))
	assert.Equal(t, 2, got.DailyCount)
	assert.InDelta(t, 0.25, got.Volume, 0.001)
}

func TestCompletionRepo_LedgerPerDate(t *testing.T) {
	repo := repository.NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := domain.CompletionRecord{
		Date:      "2026-03-01",
		Scheduled: domain.MustTimeOfDay("09:00"),
		Actual:    domain.MustTimeOfDay("09:07"),
	}
	require.NoError(t, repo.Add(ctx, rec))

	ledger, err := repo.ListByDate(ctx, "2026-03-01")
	require.NoError(t, err)
	assert.True(t, ledger.Completed(domain.MustTimeOfDay("09:00")))

	other, err := repo.ListByDate(ctx, "2026-03-02")
	require.NoError(t, err)
	assert.Empty(t, other.Records)
}

func TestCompletionRepo_DuplicateSlotRejectedBySchema(t *testing.T) {
	repo := repository.NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	rec := domain.CompletionRecord{
		Date:      "2026-03-01",
		Scheduled: domain.MustTimeOfDay("09:00"),
		Actual:    domain.MustTimeOfDay("09:07"),
	}
	require.NoError(t, repo.Add(ctx, rec))
	assert.Error(t, repo.Add(ctx, rec))
}

func TestCompletionRepo_ClearOtherThan(t *testing.T) {
	repo := repository.NewSQLiteCompletionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	old := domain.CompletionRecord{Date: "2026-02-28", Scheduled: domain.MustTimeOfDay("09:00"), Actual: domain.MustTimeOfDay("09:00")}
	current := domain.CompletionRecord{Date: "2026-03-01", Scheduled: domain.MustTimeOfDay("09:00"), Actual: domain.MustTimeOfDay("09:00")}
	require.NoError(t, repo.Add(ctx, old))
	require.NoError(t, repo.Add(ctx, current))

	require.NoError(t, repo.ClearOtherThan(ctx, "2026-03-01"))

	stale, err := repo.ListByDate(ctx, "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, stale.Records)

	kept, err := repo.ListByDate(ctx, "2026-03-01")
	require.NoError(t, err)
	assert.Len(t, kept.Records, 1)
}

func TestSessionRepo_CappedMostRecentFirst(t *testing.T) {
	repo := repository.NewSQLiteSessionRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i := 0; i < domain.SessionHistoryCap+5; i++ {
		s := domain.Session{
			ID:        fmt.Sprintf("session-%02d", i),
			Date:      "2026-03-01",
			Scheduled: domain.MustTimeOfDay("09:00"),
			Actual:    domain.MustTimeOfDay("09:30"),
			Taps:      domain.TapsPerRecitation,
		}
		require.NoError(t, repo.Add(ctx, s, domain.SessionHistoryCap))
	}

	got, err := repo.ListRecent(ctx, domain.SessionHistoryCap)
	require.NoError(t, err)
	require.Len(t, got, domain.SessionHistoryCap)
	assert.Equal(t, fmt.Sprintf("session-%02d", domain.SessionHistoryCap+4), got[0].ID, "newest first")
}

func TestAppStateRepo_GetSet(t *testing.T) {
	repo := repository.NewSQLiteAppStateRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx, repository.KeyLastResetDate)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Set(ctx, repository.KeyLastResetDate, "2026-03-01"))
	require.NoError(t, repo.Set(ctx, repository.KeyLastResetDate, "2026-03-02"))

	got, err := repo.Get(ctx, repository.KeyLastResetDate)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", got)
}
