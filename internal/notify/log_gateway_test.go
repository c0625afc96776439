package notify

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway() (*LogGateway, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewLogGateway(logger), &buf
}

func TestLogGateway_ScheduleReplaceCancel(t *testing.T) {
	g, _ := newTestGateway()
	at := time.Now().Add(30 * time.Minute)

	require.NoError(t, g.ScheduleAt("missed-09:00", at, "Reminder", "body"))
	require.NoError(t, g.ScheduleAt("missed-09:00", at.Add(time.Minute), "Reminder", "body"))

	pending, err := g.ListScheduled()
	require.NoError(t, err)
	require.Len(t, pending, 1, "same id replaces")

	require.NoError(t, g.Cancel("missed-09:00"))
	pending, err = g.ListScheduled()
	require.NoError(t, err)
	assert.Empty(t, pending)

	// Cancelling an unknown id is a no-op.
	assert.NoError(t, g.Cancel("missed-21:00"))
}

func TestLogGateway_FireDue(t *testing.T) {
	g, buf := newTestGateway()
	now := time.Now()

	require.NoError(t, g.ScheduleAt("missed-09:00", now.Add(-time.Minute), "Due", "past"))
	require.NoError(t, g.ScheduleAt("missed-15:00", now.Add(time.Hour), "NotDue", "future"))

	g.FireDue(now)

	pending, err := g.ListScheduled()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "missed-15:00", pending[0].ID)
	assert.Contains(t, buf.String(), "Due")
}

func TestMissedID(t *testing.T) {
	assert.Equal(t, "missed-09:00", MissedID("09:00"))
}
