package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/subtrack-app/subtrack/internal/model"
)

// ScheduleNotification registers a notification trigger in the local registry.
func (s *SQLiteStorage) ScheduleNotification(ctx context.Context, notification *model.Notification) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateNotification(notification); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notifications (id, subscription_id, trigger_at, title, body, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		notification.ID,
		notification.SubscriptionID,
		notification.TriggerAt,
		notification.Title,
		notification.Body,
		notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification %s: %w", notification.ID, err)
	}

	return nil
}

// CancelNotificationsForSubscription removes every undelivered trigger
// registered for a subscription id.
func (s *SQLiteStorage) CancelNotificationsForSubscription(ctx context.Context, subscriptionID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(subscriptionID, "subscriptionID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM notifications
		WHERE subscription_id = ? AND delivered_at IS NULL
	`, subscriptionID)
	if err != nil {
		return fmt.Errorf("failed to cancel notifications for %s: %w", subscriptionID, err)
	}

	return nil
}

// PendingNotifications returns all undelivered triggers ordered by instant.
func (s *SQLiteStorage) PendingNotifications(ctx context.Context) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryNotifications(ctx, `
		SELECT id, subscription_id, trigger_at, title, body, delivered_at, created_at
		FROM notifications
		WHERE delivered_at IS NULL
		ORDER BY trigger_at
	`)
}

// DueNotifications returns undelivered triggers whose instant has passed.
func (s *SQLiteStorage) DueNotifications(ctx context.Context, asOf time.Time) ([]model.Notification, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	return s.queryNotifications(ctx, `
		SELECT id, subscription_id, trigger_at, title, body, delivered_at, created_at
		FROM notifications
		WHERE delivered_at IS NULL AND trigger_at <= ?
		ORDER BY trigger_at
	`, asOf)
}

// MarkNotificationDelivered stamps a trigger as fired.
func (s *SQLiteStorage) MarkNotificationDelivered(ctx context.Context, id string, deliveredAt time.Time) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET delivered_at = ? WHERE id = ? AND delivered_at IS NULL
	`, deliveredAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification %s delivered: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check notification update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("notification %s: %w", id, sql.ErrNoRows)
	}

	return nil
}

func (s *SQLiteStorage) queryNotifications(ctx context.Context, query string, args ...any) ([]model.Notification, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	notifications := make([]model.Notification, 0)
	for rows.Next() {
		var n model.Notification
		var body sql.NullString
		var deliveredAt sql.NullTime

		if err := rows.Scan(&n.ID, &n.SubscriptionID, &n.TriggerAt, &n.Title, &body, &deliveredAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		n.Body = body.String
		if deliveredAt.Valid {
			t := deliveredAt.Time
			n.DeliveredAt = &t
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}
