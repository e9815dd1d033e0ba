package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/subtrack-app/subtrack/internal/config"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/notify"
	"github.com/subtrack-app/subtrack/internal/reminder"
	"github.com/subtrack-app/subtrack/internal/storage"
	"github.com/subtrack-app/subtrack/internal/store"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/subtrack/subtrack.db"
	}
	dbPath = config.ExpandPath(dbPath)

	sqlite, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := sqlite.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return sqlite, nil
}

// initStore wires storage, notifier, scheduler, and store, and loads the
// subscription list. The returned cleanup closes the database.
func initStore(ctx context.Context) (*store.Store, *notify.LocalNotifier, func(), error) {
	sqlite, err := initStorage(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	notifier := notify.NewLocalNotifier(sqlite, viper.GetBool("notifications.enabled"))
	scheduler := reminder.NewScheduler(notifier)
	s := store.New(sqlite, scheduler)

	if err := s.Load(ctx); err != nil {
		_ = sqlite.Close()
		return nil, nil, nil, err
	}

	return s, notifier, func() { _ = sqlite.Close() }, nil
}

// currencyCode returns the configured display currency.
func currencyCode() string {
	return viper.GetString("currency")
}

// parseFrequency parses a user-supplied frequency string.
func parseFrequency(value string) (model.Frequency, error) {
	frequency := model.Frequency(strings.ToLower(strings.TrimSpace(value)))
	if !frequency.IsValid() {
		return "", fmt.Errorf("invalid frequency %q (expected monthly or annual)", value)
	}
	return frequency, nil
}

// parseDate parses a user-supplied date, accepting a few common layouts.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
}

// parseTimeOfDay parses an HH:MM reminder time.
func parseTimeOfDay(value string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (expected HH:MM)", value)
	}
	return t, nil
}

// resolveCategory validates a category label, falling back to Other for
// unknown labels rather than failing.
func resolveCategory(value string) string {
	if value == "" || !model.IsKnownCategory(value) {
		return model.CategoryOther
	}
	return value
}
