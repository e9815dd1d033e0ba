package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/subtrack-app/subtrack/internal/model"
)

// LoadAll returns the full subscription list in insertion order. A fresh
// database yields an empty list, never an error.
func (s *SQLiteStorage) LoadAll(ctx context.Context) ([]model.Subscription, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, cost, frequency, renewal_date, category, notes, color, icon,
		       created_at, updated_at, reminder_enabled, reminder_days, reminder_time
		FROM subscriptions
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subscriptions := make([]model.Subscription, 0)
	for rows.Next() {
		sub, scanErr := scanSubscription(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		subscriptions = append(subscriptions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}

	return subscriptions, nil
}

// SaveAll replaces the persisted subscription list wholesale in a single
// transaction, preserving the given order. There are no partial updates;
// concurrent writers are last-write-wins.
func (s *SQLiteStorage) SaveAll(ctx context.Context, subscriptions []model.Subscription) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSubscriptions(subscriptions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM subscriptions`); err != nil {
		return fmt.Errorf("failed to clear subscriptions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO subscriptions (
			id, name, cost, frequency, renewal_date, category, notes, color, icon,
			position, created_at, updated_at, reminder_enabled, reminder_days, reminder_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for position, sub := range subscriptions {
		var reminderEnabled sql.NullBool
		var reminderDays sql.NullInt64
		var reminderTime sql.NullTime
		if sub.Reminder != nil {
			reminderEnabled = sql.NullBool{Bool: sub.Reminder.Enabled, Valid: true}
			reminderDays = sql.NullInt64{Int64: int64(sub.Reminder.DaysInAdvance), Valid: true}
			reminderTime = sql.NullTime{Time: sub.Reminder.Time, Valid: true}
		}

		_, err = stmt.ExecContext(ctx,
			sub.ID,
			sub.Name,
			sub.Cost,
			string(sub.Frequency),
			sub.RenewalDate,
			sub.Category,
			nullString(sub.Notes),
			sub.Color,
			nullString(sub.Icon),
			position,
			sub.CreatedAt,
			sub.UpdatedAt,
			reminderEnabled,
			reminderDays,
			reminderTime,
		)
		if err != nil {
			return fmt.Errorf("failed to insert subscription %s: %w", sub.ID, err)
		}
	}

	return tx.Commit()
}

func scanSubscription(rows *sql.Rows) (model.Subscription, error) {
	var sub model.Subscription
	var notes, icon sql.NullString
	var reminderEnabled sql.NullBool
	var reminderDays sql.NullInt64
	var reminderTime sql.NullTime
	var frequency string

	err := rows.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Cost,
		&frequency,
		&sub.RenewalDate,
		&sub.Category,
		&notes,
		&sub.Color,
		&icon,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&reminderEnabled,
		&reminderDays,
		&reminderTime,
	)
	if err != nil {
		return sub, fmt.Errorf("failed to scan subscription: %w", err)
	}

	sub.Frequency = model.Frequency(frequency)
	sub.Notes = notes.String
	sub.Icon = icon.String

	if reminderEnabled.Valid {
		sub.Reminder = &model.Reminder{
			Enabled:       reminderEnabled.Bool,
			DaysInAdvance: int(reminderDays.Int64),
			Time:          reminderTime.Time,
		}
	}

	return sub, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
