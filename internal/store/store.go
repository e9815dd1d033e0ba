// Package store holds the in-memory subscription list and its persistence.
// Every mutation reads the full list, changes it in memory, and writes the
// full list back; there are no partial updates and concurrent processes are
// last-write-wins. Reminder scheduling is best-effort and never blocks a
// mutation from persisting.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack-app/subtrack/internal/common"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/reminder"
	"github.com/subtrack-app/subtrack/internal/service"
)

// AddParams carries the user-supplied fields for a new subscription.
// ID, color, and timestamps are assigned by the store.
type AddParams struct {
	RenewalDate time.Time
	Reminder    *model.Reminder
	Name        string
	Category    string
	Notes       string
	Icon        string
	Frequency   model.Frequency
	Cost        float64
}

// UpdateParams is a field-level update; nil fields are left untouched.
type UpdateParams struct {
	Name        *string
	Cost        *float64
	Frequency   *model.Frequency
	RenewalDate *time.Time
	Category    *string
	Notes       *string
	Icon        *string
}

var _ service.SubscriptionView = (*Store)(nil)

// Store owns the subscription list. It implements service.SubscriptionView;
// mutation methods are its own surface.
type Store struct {
	storage   service.Storage
	scheduler *reminder.Scheduler
	now       func() time.Time
	newID     func() string

	mu            sync.Mutex
	subscriptions []model.Subscription
}

// New creates a store over the given storage and reminder scheduler.
func New(storage service.Storage, scheduler *reminder.Scheduler) *Store {
	return &Store{
		storage:   storage,
		scheduler: scheduler,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Load reads the persisted subscription list into memory. A fresh database
// yields an empty list.
func (s *Store) Load(ctx context.Context) error {
	subscriptions, err := s.storage.LoadAll(ctx)
	if err != nil {
		return common.NewUserError("could not load subscriptions", err)
	}

	s.mu.Lock()
	s.subscriptions = subscriptions
	s.mu.Unlock()
	return nil
}

// Subscriptions returns a snapshot of the current list in insertion order.
func (s *Store) Subscriptions() []model.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.Subscription, len(s.subscriptions))
	copy(snapshot, s.subscriptions)
	return snapshot
}

// Get returns the subscription with the given id.
func (s *Store) Get(id string) (model.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			return s.subscriptions[i], nil
		}
	}
	return model.Subscription{}, fmt.Errorf("subscription %s: %w", id, common.ErrNotFound)
}

// Add creates a new subscription, persists the list, and best-effort applies
// any reminder preference. Scheduling problems are logged, never fatal.
func (s *Store) Add(ctx context.Context, params AddParams) (model.Subscription, error) {
	now := s.now()

	icon := params.Icon
	if icon == "" {
		icon = model.DefaultIcon
	}

	sub := model.Subscription{
		ID:          s.newID(),
		Name:        params.Name,
		Cost:        params.Cost,
		Frequency:   params.Frequency,
		RenewalDate: params.RenewalDate,
		Category:    params.Category,
		Notes:       params.Notes,
		Color:       model.CategoryColor(params.Category),
		Icon:        icon,
		CreatedAt:   now,
		UpdatedAt:   now,
		Reminder:    params.Reminder,
	}

	s.mu.Lock()
	updated := append(s.snapshotLocked(), sub)
	if err := s.storage.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return model.Subscription{}, common.NewUserError("could not save subscription", err)
	}
	s.subscriptions = updated
	s.mu.Unlock()

	if sub.HasReminder() {
		s.applyReminder(ctx, &sub)
	}

	return sub, nil
}

// Update applies a field-level update, refreshes UpdatedAt, and persists.
// Changing the category re-derives the color; changing the renewal date
// re-applies an enabled reminder so the trigger tracks the new date.
func (s *Store) Update(ctx context.Context, id string, params UpdateParams) (model.Subscription, error) {
	s.mu.Lock()

	index := -1
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return model.Subscription{}, fmt.Errorf("subscription %s: %w", id, common.ErrNotFound)
	}

	updated := s.snapshotLocked()
	sub := &updated[index]

	renewalChanged := false
	if params.Name != nil {
		sub.Name = *params.Name
	}
	if params.Cost != nil {
		sub.Cost = *params.Cost
	}
	if params.Frequency != nil {
		sub.Frequency = *params.Frequency
	}
	if params.RenewalDate != nil && !params.RenewalDate.Equal(sub.RenewalDate) {
		sub.RenewalDate = *params.RenewalDate
		renewalChanged = true
	}
	if params.Category != nil {
		sub.Category = *params.Category
		sub.Color = model.CategoryColor(*params.Category)
	}
	if params.Notes != nil {
		sub.Notes = *params.Notes
	}
	if params.Icon != nil {
		sub.Icon = *params.Icon
	}
	sub.UpdatedAt = s.now()

	if err := s.storage.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return model.Subscription{}, common.NewUserError("could not save subscription", err)
	}
	s.subscriptions = updated
	result := *sub
	s.mu.Unlock()

	if renewalChanged && result.HasReminder() {
		s.applyReminder(ctx, &result)
	}

	return result, nil
}

// SetReminder persists the reminder preference and then attempts to schedule
// the trigger. Persistence always happens first: a denied permission or a
// past trigger instant still leaves the preference saved, and the returned
// outcome tells the caller which of those happened.
func (s *Store) SetReminder(ctx context.Context, id string, r *model.Reminder) (model.Subscription, reminder.Outcome, error) {
	s.mu.Lock()

	index := -1
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			index = i
			break
		}
	}
	if index < 0 {
		s.mu.Unlock()
		return model.Subscription{}, "", fmt.Errorf("subscription %s: %w", id, common.ErrNotFound)
	}

	updated := s.snapshotLocked()
	updated[index].Reminder = r
	updated[index].UpdatedAt = s.now()

	if err := s.storage.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return model.Subscription{}, "", common.NewUserError("could not save reminder preference", err)
	}
	s.subscriptions = updated
	result := updated[index]
	s.mu.Unlock()

	outcome, err := s.scheduler.Apply(ctx, &result)
	if err != nil {
		// The preference is already persisted; scheduling is best-effort.
		common.LogError(err, "reminder scheduling failed", common.Fields{"subscription_id": id})
	}

	return result, outcome, nil
}

// Delete removes the subscription and persists the shortened list, then
// cancels its notification triggers. The storage write happens first; a
// crash in between leaves an orphaned trigger whose payload references
// nothing live, which is accepted.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()

	updated := make([]model.Subscription, 0, len(s.subscriptions))
	found := false
	for i := range s.subscriptions {
		if s.subscriptions[i].ID == id {
			found = true
			continue
		}
		updated = append(updated, s.subscriptions[i])
	}
	if !found {
		s.mu.Unlock()
		return fmt.Errorf("subscription %s: %w", id, common.ErrNotFound)
	}

	if err := s.storage.SaveAll(ctx, updated); err != nil {
		s.mu.Unlock()
		return common.NewUserError("could not delete subscription", err)
	}
	s.subscriptions = updated
	s.mu.Unlock()

	if err := s.scheduler.Cancel(ctx, id); err != nil {
		return common.NewUserError("subscription deleted, but its reminder could not be cancelled", err)
	}

	return nil
}

// applyReminder schedules best-effort and logs the result.
func (s *Store) applyReminder(ctx context.Context, sub *model.Subscription) {
	outcome, err := s.scheduler.Apply(ctx, sub)
	if err != nil {
		common.LogError(err, "reminder scheduling failed", common.Fields{"subscription_id": sub.ID})
		return
	}
	common.LogInfo("reminder scheduling applied", common.Fields{
		"subscription_id": sub.ID,
		"outcome":         string(outcome),
	})
}

// snapshotLocked copies the list; callers must hold s.mu.
func (s *Store) snapshotLocked() []model.Subscription {
	snapshot := make([]model.Subscription, len(s.subscriptions))
	copy(snapshot, s.subscriptions)
	return snapshot
}
