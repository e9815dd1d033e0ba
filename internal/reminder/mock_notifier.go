package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockTrigger records a single scheduled trigger on the mock notifier.
type MockTrigger struct {
	TriggerAt      time.Time
	Handle         string
	SubscriptionID string
	Title          string
	Body           string
}

// MockNotifier is an in-memory service.Notifier for tests.
type MockNotifier struct {
	// PermissionGranted controls RequestPermission's answer.
	PermissionGranted bool
	// PermissionErr, ScheduleErr, and CancelErr force failures when set.
	PermissionErr error
	ScheduleErr   error
	CancelErr     error

	mu          sync.Mutex
	triggers    []MockTrigger
	cancelCalls []string
	nextHandle  int
}

// NewMockNotifier returns a mock that grants permission by default.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{PermissionGranted: true}
}

// RequestPermission implements service.Notifier.
func (m *MockNotifier) RequestPermission(_ context.Context) (bool, error) {
	if m.PermissionErr != nil {
		return false, m.PermissionErr
	}
	return m.PermissionGranted, nil
}

// Schedule implements service.Notifier.
func (m *MockNotifier) Schedule(_ context.Context, subscriptionID string, triggerAt time.Time, title, body string) (string, error) {
	if m.ScheduleErr != nil {
		return "", m.ScheduleErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextHandle++
	handle := fmt.Sprintf("mock-%d", m.nextHandle)
	m.triggers = append(m.triggers, MockTrigger{
		Handle:         handle,
		SubscriptionID: subscriptionID,
		TriggerAt:      triggerAt,
		Title:          title,
		Body:           body,
	})
	return handle, nil
}

// CancelAllForID implements service.Notifier.
func (m *MockNotifier) CancelAllForID(_ context.Context, subscriptionID string) error {
	if m.CancelErr != nil {
		return m.CancelErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.cancelCalls = append(m.cancelCalls, subscriptionID)

	kept := m.triggers[:0]
	for _, trigger := range m.triggers {
		if trigger.SubscriptionID != subscriptionID {
			kept = append(kept, trigger)
		}
	}
	m.triggers = kept
	return nil
}

// TriggersFor returns the active triggers registered for a subscription.
func (m *MockNotifier) TriggersFor(subscriptionID string) []MockTrigger {
	m.mu.Lock()
	defer m.mu.Unlock()

	var found []MockTrigger
	for _, trigger := range m.triggers {
		if trigger.SubscriptionID == subscriptionID {
			found = append(found, trigger)
		}
	}
	return found
}

// CancelCalls returns the subscription ids CancelAllForID was invoked with.
func (m *MockNotifier) CancelCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]string, len(m.cancelCalls))
	copy(calls, m.cancelCalls)
	return calls
}
