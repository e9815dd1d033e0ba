package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "subtrack.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSubscription(id, name string) model.Subscription {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return model.Subscription{
		ID:          id,
		Name:        name,
		Cost:        15.99,
		Frequency:   model.FrequencyMonthly,
		RenewalDate: now.AddDate(0, 1, 0),
		Category:    "Video",
		Color:       model.CategoryColor("Video"),
		Icon:        model.DefaultIcon,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))
}

func TestLoadAllEmptyDatabase(t *testing.T) {
	store := newTestStorage(t)

	subs, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestSaveAllRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	sub := testSubscription("sub-1", "Netflix")
	sub.Notes = "shared account"
	sub.Reminder = &model.Reminder{
		Enabled:       true,
		DaysInAdvance: 3,
		Time:          time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, store.SaveAll(ctx, []model.Subscription{sub}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	got := loaded[0]
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, sub.Name, got.Name)
	assert.InDelta(t, sub.Cost, got.Cost, 0.001)
	assert.Equal(t, sub.Frequency, got.Frequency)
	assert.True(t, sub.RenewalDate.Equal(got.RenewalDate))
	assert.Equal(t, sub.Category, got.Category)
	assert.Equal(t, sub.Notes, got.Notes)
	assert.Equal(t, sub.Color, got.Color)
	assert.Equal(t, sub.Icon, got.Icon)
	require.NotNil(t, got.Reminder)
	assert.True(t, got.Reminder.Enabled)
	assert.Equal(t, 3, got.Reminder.DaysInAdvance)
	assert.Equal(t, 9, got.Reminder.Time.Hour())
}

func TestSaveAllPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	subs := []model.Subscription{
		testSubscription("sub-3", "Zelda Online"),
		testSubscription("sub-1", "Netflix"),
		testSubscription("sub-2", "Audible"),
	}
	require.NoError(t, store.SaveAll(ctx, subs))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "Zelda Online", loaded[0].Name)
	assert.Equal(t, "Netflix", loaded[1].Name)
	assert.Equal(t, "Audible", loaded[2].Name)
}

func TestSaveAllReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	require.NoError(t, store.SaveAll(ctx, []model.Subscription{
		testSubscription("sub-1", "Netflix"),
		testSubscription("sub-2", "Spotify"),
	}))

	// A second save fully overwrites the first; sub-2 is gone.
	require.NoError(t, store.SaveAll(ctx, []model.Subscription{
		testSubscription("sub-1", "Netflix"),
	}))

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "sub-1", loaded[0].ID)

	// Saving an empty list clears everything.
	require.NoError(t, store.SaveAll(ctx, nil))
	loaded, err = store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestSaveAllRejectsInvalidRecords(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	bad := testSubscription("sub-1", "Netflix")
	bad.Cost = 0

	err := store.SaveAll(ctx, []model.Subscription{bad})
	assert.ErrorIs(t, err, ErrInvalidSubscription)

	bad = testSubscription("sub-1", "Netflix")
	bad.Frequency = "weekly"
	assert.ErrorIs(t, store.SaveAll(ctx, []model.Subscription{bad}), ErrInvalidSubscription)
}

func TestNotificationRegistry(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	due := &model.Notification{
		ID:             "n-1",
		SubscriptionID: "sub-1",
		TriggerAt:      now.Add(-time.Hour),
		Title:          "Renewal reminder: Netflix",
		Body:           "Your Netflix subscription renews in 3 day(s).",
		CreatedAt:      now.Add(-48 * time.Hour),
	}
	future := &model.Notification{
		ID:             "n-2",
		SubscriptionID: "sub-2",
		TriggerAt:      now.Add(time.Hour),
		Title:          "Renewal reminder: Spotify",
		CreatedAt:      now.Add(-48 * time.Hour),
	}

	require.NoError(t, store.ScheduleNotification(ctx, due))
	require.NoError(t, store.ScheduleNotification(ctx, future))

	pending, err := store.PendingNotifications(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	dueList, err := store.DueNotifications(ctx, now)
	require.NoError(t, err)
	require.Len(t, dueList, 1)
	assert.Equal(t, "n-1", dueList[0].ID)

	require.NoError(t, store.MarkNotificationDelivered(ctx, "n-1", now))

	dueList, err = store.DueNotifications(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, dueList)

	// Delivering twice is an error; the trigger already fired.
	assert.Error(t, store.MarkNotificationDelivered(ctx, "n-1", now))
}

func TestCancelNotificationsForSubscription(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"n-1", "n-2"} {
		require.NoError(t, store.ScheduleNotification(ctx, &model.Notification{
			ID:             id,
			SubscriptionID: "sub-1",
			TriggerAt:      now.Add(time.Duration(i+1) * time.Hour),
			Title:          "Renewal reminder: Netflix",
			CreatedAt:      now,
		}))
	}
	require.NoError(t, store.ScheduleNotification(ctx, &model.Notification{
		ID:             "n-3",
		SubscriptionID: "sub-2",
		TriggerAt:      now.Add(time.Hour),
		Title:          "Renewal reminder: Spotify",
		CreatedAt:      now,
	}))

	require.NoError(t, store.CancelNotificationsForSubscription(ctx, "sub-1"))

	pending, err := store.PendingNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "sub-2", pending[0].SubscriptionID)
}

func TestValidateNotification(t *testing.T) {
	now := time.Now()

	valid := &model.Notification{
		ID:             "n-1",
		SubscriptionID: "sub-1",
		TriggerAt:      now,
		Title:          "Renewal reminder: Netflix",
		CreatedAt:      now,
	}
	assert.NoError(t, validateNotification(valid))

	assert.ErrorIs(t, validateNotification(nil), ErrNilParameter)

	missingTitle := *valid
	missingTitle.Title = " "
	assert.ErrorIs(t, validateNotification(&missingTitle), ErrInvalidNotification)
}
