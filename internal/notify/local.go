// Package notify implements the platform notification surface on top of the
// local notification registry. Registered triggers are delivered by the
// notify command the next time it runs after their instant passes; the
// application exerts no further control over a trigger once registered.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/service"
)

var _ service.Notifier = (*LocalNotifier)(nil)

// LocalNotifier implements service.Notifier against the SQLite-backed
// notification registry. Permission mirrors the platform prompt: it is
// granted or denied wholesale through configuration.
type LocalNotifier struct {
	storage service.Storage
	now     func() time.Time
	enabled bool
}

// NewLocalNotifier creates a notifier over the given storage. enabled models
// the platform-level notification permission.
func NewLocalNotifier(storage service.Storage, enabled bool) *LocalNotifier {
	return &LocalNotifier{
		storage: storage,
		enabled: enabled,
		now:     time.Now,
	}
}

// RequestPermission reports whether notifications are allowed. Denial is an
// answer, not an error.
func (n *LocalNotifier) RequestPermission(_ context.Context) (bool, error) {
	return n.enabled, nil
}

// Schedule registers a one-shot trigger tagged with the subscription id and
// returns its handle.
func (n *LocalNotifier) Schedule(ctx context.Context, subscriptionID string, triggerAt time.Time, title, body string) (string, error) {
	notification := &model.Notification{
		ID:             uuid.NewString(),
		SubscriptionID: subscriptionID,
		TriggerAt:      triggerAt,
		Title:          title,
		Body:           body,
		CreatedAt:      n.now(),
	}

	if err := n.storage.ScheduleNotification(ctx, notification); err != nil {
		return "", fmt.Errorf("failed to register notification trigger: %w", err)
	}

	return notification.ID, nil
}

// CancelAllForID removes every undelivered trigger for the subscription id.
func (n *LocalNotifier) CancelAllForID(ctx context.Context, subscriptionID string) error {
	return n.storage.CancelNotificationsForSubscription(ctx, subscriptionID)
}

// Pending returns every undelivered trigger, soonest first.
func (n *LocalNotifier) Pending(ctx context.Context) ([]model.Notification, error) {
	return n.storage.PendingNotifications(ctx)
}

// Deliver collects the triggers that are due as of now, marks them delivered,
// and returns them for display. Triggers that fail to mark are skipped and
// reported at the end rather than aborting the batch.
func (n *LocalNotifier) Deliver(ctx context.Context) ([]model.Notification, error) {
	asOf := n.now()

	due, err := n.storage.DueNotifications(ctx, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to collect due notifications: %w", err)
	}

	delivered := make([]model.Notification, 0, len(due))
	var firstErr error
	for _, notification := range due {
		if markErr := n.storage.MarkNotificationDelivered(ctx, notification.ID, asOf); markErr != nil {
			if firstErr == nil {
				firstErr = markErr
			}
			continue
		}
		delivered = append(delivered, notification)
	}

	return delivered, firstErr
}
