// Package reminder translates a subscription's renewal date and reminder
// preference into at most one scheduled local-notification trigger.
package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/subtrack-app/subtrack/internal/common"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/service"
)

// Outcome is the result of a scheduling attempt. Suppression and permission
// denial are ordinary outcomes the caller can message to the user; only
// OutcomeFailed carries an underlying error.
type Outcome string

const (
	// OutcomeDisabled means the reminder is absent or disabled; any existing
	// trigger was cancelled.
	OutcomeDisabled Outcome = "disabled"
	// OutcomeScheduled means a new trigger was registered.
	OutcomeScheduled Outcome = "scheduled"
	// OutcomeSuppressed means the computed trigger instant is already in the
	// past, so nothing was registered. The preference itself is still saved
	// by the store.
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomePermissionDenied means the platform refused notification
	// permission; nothing was registered.
	OutcomePermissionDenied Outcome = "permission_denied"
	// OutcomeFailed means the platform errored while cancelling or
	// registering the trigger.
	OutcomeFailed Outcome = "failed"
)

// TriggerInstant computes the absolute instant a reminder should fire:
// the renewal date minus the lead time, with the hour and minute overwritten
// from the preferred time-of-day and seconds zeroed. The date component of
// timeOfDay is ignored. Lead time is deliberately not clamped; near-term
// renewals with a large lead time simply produce a past instant.
func TriggerInstant(renewalDate time.Time, daysInAdvance int, timeOfDay time.Time) time.Time {
	day := renewalDate.AddDate(0, 0, -daysInAdvance)
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		day.Location(),
	)
}

// Scheduler enforces the at-most-one-trigger-per-subscription invariant on
// top of a platform Notifier. Apply and Cancel for the same subscription id
// are serialized through a per-id critical section so two in-flight calls
// cannot both register a trigger.
type Scheduler struct {
	notifier service.Notifier
	now      func() time.Time
	locks    map[string]*sync.Mutex
	mu       sync.Mutex
}

// NewScheduler creates a scheduler on top of the given platform notifier.
func NewScheduler(notifier service.Notifier) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// WithClock replaces the scheduler's clock. Tests use this to pin "now" when
// deciding whether a computed trigger instant is already past.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// lockID acquires the per-subscription critical section.
func (s *Scheduler) lockID(id string) func() {
	s.mu.Lock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Apply reconciles the platform trigger state with the subscription's
// reminder preference. It never panics and never returns an error for
// permission denial or past instants; those are reported as outcomes.
func (s *Scheduler) Apply(ctx context.Context, sub *model.Subscription) (Outcome, error) {
	unlock := s.lockID(sub.ID)
	defer unlock()

	if !sub.HasReminder() {
		if err := s.notifier.CancelAllForID(ctx, sub.ID); err != nil {
			common.LogError(err, "failed to cancel reminder triggers", common.Fields{"subscription_id": sub.ID})
			return OutcomeFailed, fmt.Errorf("%w: cancel for %s: %w", common.ErrScheduleFailed, sub.ID, err)
		}
		return OutcomeDisabled, nil
	}

	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		common.LogError(err, "notification permission check failed", common.Fields{"subscription_id": sub.ID})
		return OutcomeFailed, fmt.Errorf("%w: permission check: %w", common.ErrScheduleFailed, err)
	}
	if !granted {
		return OutcomePermissionDenied, nil
	}

	triggerAt := TriggerInstant(sub.RenewalDate, sub.Reminder.DaysInAdvance, sub.Reminder.Time)
	if !triggerAt.After(s.now()) {
		return OutcomeSuppressed, nil
	}

	// At-most-one trigger per subscription: always cancel-then-create, never
	// update in place.
	if err := s.notifier.CancelAllForID(ctx, sub.ID); err != nil {
		common.LogError(err, "failed to cancel existing reminder triggers", common.Fields{"subscription_id": sub.ID})
		return OutcomeFailed, fmt.Errorf("%w: cancel for %s: %w", common.ErrScheduleFailed, sub.ID, err)
	}

	title := fmt.Sprintf("Renewal reminder: %s", sub.Name)
	body := fmt.Sprintf("Your %s subscription renews in %d day(s).", sub.Name, sub.Reminder.DaysInAdvance)

	handle, err := s.notifier.Schedule(ctx, sub.ID, triggerAt, title, body)
	if err != nil {
		common.LogError(err, "failed to schedule reminder trigger", common.Fields{"subscription_id": sub.ID})
		return OutcomeFailed, fmt.Errorf("%w: schedule for %s: %w", common.ErrScheduleFailed, sub.ID, err)
	}

	common.LogInfo("scheduled renewal reminder", common.Fields{
		"subscription_id": sub.ID,
		"trigger_at":      triggerAt,
		"handle":          handle,
	})

	return OutcomeScheduled, nil
}

// Cancel removes every trigger registered for the subscription id. Deleting
// a subscription calls this after the storage write; a crash between the two
// leaves an orphaned trigger, which is an accepted inconsistency since its
// payload references nothing live.
func (s *Scheduler) Cancel(ctx context.Context, subscriptionID string) error {
	unlock := s.lockID(subscriptionID)
	defer unlock()

	if err := s.notifier.CancelAllForID(ctx, subscriptionID); err != nil {
		return fmt.Errorf("failed to cancel triggers for %s: %w", subscriptionID, err)
	}
	return nil
}
