// Package storage provides the data persistence layer for the subtrack application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/subtrack-app/subtrack/internal/model"
)

// Validation errors.
var (
	ErrNilContext          = errors.New("context cannot be nil")
	ErrEmptyString         = errors.New("string parameter cannot be empty")
	ErrNilParameter        = errors.New("parameter cannot be nil")
	ErrInvalidSubscription = errors.New("invalid subscription")
	ErrInvalidNotification = errors.New("invalid notification")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateSubscriptions validates a slice of subscriptions. An empty slice is
// valid: saving wholesale with zero records clears the list.
func validateSubscriptions(subscriptions []model.Subscription) error {
	for i := range subscriptions {
		if err := validateSubscription(&subscriptions[i]); err != nil {
			return fmt.Errorf("subscription at index %d: %w", i, err)
		}
	}
	return nil
}

// validateSubscription validates a single subscription.
func validateSubscription(sub *model.Subscription) error {
	if sub == nil {
		return fmt.Errorf("%w: subscription", ErrNilParameter)
	}
	if sub.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidSubscription)
	}
	if strings.TrimSpace(sub.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidSubscription)
	}
	if sub.Cost <= 0 {
		return fmt.Errorf("%w: cost must be positive", ErrInvalidSubscription)
	}
	if !sub.Frequency.IsValid() {
		return fmt.Errorf("%w: frequency %q", ErrInvalidSubscription, sub.Frequency)
	}
	if sub.RenewalDate.IsZero() {
		return fmt.Errorf("%w: missing renewal date", ErrInvalidSubscription)
	}
	if sub.Reminder != nil && sub.Reminder.DaysInAdvance < 0 {
		return fmt.Errorf("%w: reminder lead time cannot be negative", ErrInvalidSubscription)
	}
	return nil
}

// validateNotification validates a notification trigger.
func validateNotification(n *model.Notification) error {
	if n == nil {
		return fmt.Errorf("%w: notification", ErrNilParameter)
	}
	if n.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidNotification)
	}
	if n.SubscriptionID == "" {
		return fmt.Errorf("%w: missing subscription ID", ErrInvalidNotification)
	}
	if n.TriggerAt.IsZero() {
		return fmt.Errorf("%w: missing trigger instant", ErrInvalidNotification)
	}
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidNotification)
	}
	return nil
}
