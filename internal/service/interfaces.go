// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/subtrack-app/subtrack/internal/model"
)

// Storage defines the contract for our persistence layer. The subscription
// list is persisted wholesale: LoadAll returns the full list and SaveAll
// replaces it. Concurrent writers are last-write-wins by design.
type Storage interface {
	// Subscription list operations
	LoadAll(ctx context.Context) ([]model.Subscription, error)
	SaveAll(ctx context.Context, subscriptions []model.Subscription) error

	// Local notification registry operations
	ScheduleNotification(ctx context.Context, notification *model.Notification) error
	CancelNotificationsForSubscription(ctx context.Context, subscriptionID string) error
	PendingNotifications(ctx context.Context) ([]model.Notification, error)
	DueNotifications(ctx context.Context, asOf time.Time) ([]model.Notification, error)
	MarkNotificationDelivered(ctx context.Context, id string, deliveredAt time.Time) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// Notifier is the platform notification surface the reminder scheduler
// depends on. Schedule registers a one-shot trigger tagged with the
// subscription id so it can be found and cancelled later.
type Notifier interface {
	RequestPermission(ctx context.Context) (bool, error)
	Schedule(ctx context.Context, subscriptionID string, triggerAt time.Time, title, body string) (string, error)
	CancelAllForID(ctx context.Context, subscriptionID string) error
}

// SubscriptionView is the read-only capability over the current subscription
// list. Aggregation consumes snapshots through this interface and never
// needs mutation rights.
type SubscriptionView interface {
	Subscriptions() []model.Subscription
}
