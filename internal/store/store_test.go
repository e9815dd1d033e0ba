package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/reminder"
	"github.com/subtrack-app/subtrack/internal/stats"
	"github.com/subtrack-app/subtrack/internal/storage"
)

type fixture struct {
	store    *Store
	notifier *reminder.MockNotifier
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlite, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "subtrack.db"))
	require.NoError(t, err)
	require.NoError(t, sqlite.Migrate(context.Background()))
	t.Cleanup(func() { _ = sqlite.Close() })

	notifier := reminder.NewMockNotifier()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	scheduler := reminder.NewScheduler(notifier).WithClock(func() time.Time { return now })

	s := New(sqlite, scheduler)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Load(context.Background()))

	return &fixture{store: s, notifier: notifier, now: now}
}

func addParams(name string, renewal time.Time) AddParams {
	return AddParams{
		Name:        name,
		Cost:        15.99,
		Frequency:   model.FrequencyMonthly,
		RenewalDate: renewal,
		Category:    "Entertainment",
	}
}

func TestAddAssignsIdentityAndDecoration(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 1, 0)))
	require.NoError(t, err)

	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, model.CategoryColor("Entertainment"), sub.Color)
	assert.Equal(t, model.DefaultIcon, sub.Icon)
	assert.True(t, sub.CreatedAt.Equal(f.now))
	assert.True(t, sub.UpdatedAt.Equal(f.now))

	// Unknown categories fall back to the Other color.
	odd, err := f.store.Add(ctx, AddParams{
		Name:        "Mystery Box",
		Cost:        5,
		Frequency:   model.FrequencyMonthly,
		RenewalDate: f.now.AddDate(0, 1, 0),
		Category:    "Cryptozoology",
	})
	require.NoError(t, err)
	assert.Equal(t, model.CategoryColor(model.CategoryOther), odd.Color)
}

func TestAddPersistsAcrossReload(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 1, 0)))
	require.NoError(t, err)

	require.NoError(t, f.store.Load(ctx))
	loaded, err := f.store.Get(added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Netflix", loaded.Name)
}

func TestUpdateRefreshesTimestampAndColor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 1, 0)))
	require.NoError(t, err)

	later := f.now.Add(time.Hour)
	f.store.now = func() time.Time { return later }

	newCategory := "Music"
	newCost := 19.99
	updated, err := f.store.Update(ctx, sub.ID, UpdateParams{
		Category: &newCategory,
		Cost:     &newCost,
	})
	require.NoError(t, err)

	assert.Equal(t, "Music", updated.Category)
	assert.Equal(t, model.CategoryColor("Music"), updated.Color, "color follows category")
	assert.InDelta(t, 19.99, updated.Cost, 0.001)
	assert.True(t, updated.UpdatedAt.Equal(later))
	assert.True(t, updated.CreatedAt.Equal(f.now), "created timestamp is immutable")

	_, err = f.store.Update(ctx, "missing", UpdateParams{Cost: &newCost})
	assert.Error(t, err)
}

func TestUpdateRenewalDateReschedulesReminder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	params := addParams("Netflix", f.now.AddDate(0, 0, 10))
	params.Reminder = &model.Reminder{
		Enabled:       true,
		DaysInAdvance: 3,
		Time:          time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	sub, err := f.store.Add(ctx, params)
	require.NoError(t, err)
	require.Len(t, f.notifier.TriggersFor(sub.ID), 1)

	newRenewal := f.now.AddDate(0, 0, 20)
	_, err = f.store.Update(ctx, sub.ID, UpdateParams{RenewalDate: &newRenewal})
	require.NoError(t, err)

	triggers := f.notifier.TriggersFor(sub.ID)
	require.Len(t, triggers, 1, "rescheduling keeps exactly one trigger")
	want := time.Date(2025, 6, 18, 9, 0, 0, 0, time.UTC)
	assert.True(t, triggers[0].TriggerAt.Equal(want), "trigger tracks the new renewal date")
}

func TestSetReminderPersistsEvenWhenDenied(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 0, 10)))
	require.NoError(t, err)

	f.notifier.PermissionGranted = false

	r := &model.Reminder{Enabled: true, DaysInAdvance: 3, Time: time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)}
	updated, outcome, err := f.store.SetReminder(ctx, sub.ID, r)
	require.NoError(t, err)
	assert.Equal(t, reminder.OutcomePermissionDenied, outcome)
	require.NotNil(t, updated.Reminder, "preference is saved regardless of scheduling")
	assert.Empty(t, f.notifier.TriggersFor(sub.ID))

	// The persisted preference survives a reload.
	require.NoError(t, f.store.Load(ctx))
	loaded, err := f.store.Get(sub.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Reminder)
	assert.True(t, loaded.Reminder.Enabled)
}

func TestSetReminderSuppressedForNearRenewal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Renewal in two days, lead time seven: the trigger instant is past.
	sub, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 0, 2)))
	require.NoError(t, err)

	r := &model.Reminder{Enabled: true, DaysInAdvance: 7, Time: time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)}
	_, outcome, err := f.store.SetReminder(ctx, sub.ID, r)
	require.NoError(t, err)
	assert.Equal(t, reminder.OutcomeSuppressed, outcome)
	assert.Empty(t, f.notifier.TriggersFor(sub.ID))
}

func TestSetReminderDisableCancelsTrigger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sub, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 0, 10)))
	require.NoError(t, err)

	r := &model.Reminder{Enabled: true, DaysInAdvance: 3, Time: time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)}
	_, outcome, err := f.store.SetReminder(ctx, sub.ID, r)
	require.NoError(t, err)
	require.Equal(t, reminder.OutcomeScheduled, outcome)
	require.Len(t, f.notifier.TriggersFor(sub.ID), 1)

	_, outcome, err = f.store.SetReminder(ctx, sub.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, reminder.OutcomeDisabled, outcome)
	assert.Empty(t, f.notifier.TriggersFor(sub.ID))
}

func TestDeleteRemovesRecordAndCancelsTriggers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	params := addParams("Netflix", f.now.AddDate(0, 0, 10))
	params.Reminder = &model.Reminder{
		Enabled:       true,
		DaysInAdvance: 3,
		Time:          time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	sub, err := f.store.Add(ctx, params)
	require.NoError(t, err)
	require.Len(t, f.notifier.TriggersFor(sub.ID), 1)

	require.NoError(t, f.store.Delete(ctx, sub.ID))

	_, err = f.store.Get(sub.ID)
	assert.Error(t, err)
	assert.Empty(t, f.notifier.TriggersFor(sub.ID))
	assert.Contains(t, f.notifier.CancelCalls(), sub.ID)

	// The persisted list is shorter too.
	require.NoError(t, f.store.Load(ctx))
	assert.Empty(t, f.store.Subscriptions())

	assert.Error(t, f.store.Delete(ctx, sub.ID), "deleting twice reports not found")
}

func TestEndToEndDashboardScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Add(ctx, AddParams{
		Name:        "Netflix",
		Cost:        15.99,
		Frequency:   model.FrequencyMonthly,
		Category:    "Entertainment",
		RenewalDate: f.now.AddDate(0, 0, 5),
	})
	require.NoError(t, err)

	snapshot := f.store.Subscriptions()
	s := stats.Compute(snapshot, f.now)

	assert.GreaterOrEqual(t, s.TotalMonthly, 15.99)
	require.Len(t, s.UpcomingRenewals, 1)
	assert.Equal(t, "Netflix", s.UpcomingRenewals[0].Name)
}

func TestSubscriptionsReturnsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.store.Add(ctx, addParams("Netflix", f.now.AddDate(0, 1, 0)))
	require.NoError(t, err)

	snapshot := f.store.Subscriptions()
	snapshot[0].Name = "mutated"

	fresh := f.store.Subscriptions()
	assert.Equal(t, "Netflix", fresh[0].Name, "callers cannot mutate store state through the snapshot")
}
