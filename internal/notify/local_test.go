package notify

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/storage"
)

func newTestNotifier(t *testing.T, enabled bool, now time.Time) *LocalNotifier {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "subtrack.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })

	notifier := NewLocalNotifier(store, enabled)
	notifier.now = func() time.Time { return now }
	return notifier
}

func TestRequestPermission(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	granted, err := newTestNotifier(t, true, now).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = newTestNotifier(t, false, now).RequestPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, granted, "denial is an answer, not an error")
}

func TestScheduleAndCancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	notifier := newTestNotifier(t, true, now)

	handle, err := notifier.Schedule(ctx, "sub-1", now.Add(48*time.Hour), "Renewal reminder: Netflix", "renews in 3 day(s)")
	require.NoError(t, err)
	assert.NotEmpty(t, handle)

	require.NoError(t, notifier.CancelAllForID(ctx, "sub-1"))

	delivered, err := notifier.Deliver(ctx)
	require.NoError(t, err)
	assert.Empty(t, delivered)
}

func TestDeliverMarksDueTriggers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	notifier := newTestNotifier(t, true, now)

	_, err := notifier.Schedule(ctx, "sub-1", now.Add(-time.Hour), "Renewal reminder: Netflix", "renews in 1 day(s)")
	require.NoError(t, err)
	_, err = notifier.Schedule(ctx, "sub-2", now.Add(time.Hour), "Renewal reminder: Spotify", "renews in 3 day(s)")
	require.NoError(t, err)

	delivered, err := notifier.Deliver(ctx)
	require.NoError(t, err)
	require.Len(t, delivered, 1)
	assert.Equal(t, "sub-1", delivered[0].SubscriptionID)

	// A second run finds nothing; the trigger already fired.
	delivered, err = notifier.Deliver(ctx)
	require.NoError(t, err)
	assert.Empty(t, delivered)
}
