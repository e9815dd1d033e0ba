package model

import "time"

// Notification is a registered local-notification trigger. At most one
// undelivered notification exists per subscription at any time.
type Notification struct {
	TriggerAt      time.Time  `json:"triggerAt"`
	CreatedAt      time.Time  `json:"createdAt"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	ID             string     `json:"id"`
	SubscriptionID string     `json:"subscriptionId"`
	Title          string     `json:"title"`
	Body           string     `json:"body"`
}

// Delivered reports whether the notification has already fired.
func (n *Notification) Delivered() bool {
	return n.DeliveredAt != nil
}

// Due reports whether the trigger instant has passed as of the given time.
func (n *Notification) Due(asOf time.Time) bool {
	return !n.Delivered() && !n.TriggerAt.After(asOf)
}
