// Package model defines the core domain types for subscription tracking.
package model

import "time"

// Frequency indicates how often a subscription renews.
type Frequency string

const (
	// FrequencyMonthly represents subscriptions billed every month.
	FrequencyMonthly Frequency = "monthly"
	// FrequencyAnnual represents subscriptions billed once a year.
	FrequencyAnnual Frequency = "annual"
)

// IsValid reports whether the frequency is one of the supported values.
func (f Frequency) IsValid() bool {
	return f == FrequencyMonthly || f == FrequencyAnnual
}

// Reminder holds a subscription's notification preference. Time carries only
// a time-of-day; its date component is ignored by the scheduler.
type Reminder struct {
	Time          time.Time `json:"time"`
	DaysInAdvance int       `json:"daysInAdvance"`
	Enabled       bool      `json:"enabled"`
}

// Subscription is the single persisted entity: one recurring payment.
type Subscription struct {
	RenewalDate time.Time `json:"renewalDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Reminder    *Reminder `json:"reminder,omitempty"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Notes       string    `json:"notes,omitempty"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon,omitempty"`
	Frequency   Frequency `json:"frequency"`
	Cost        float64   `json:"cost"`
}

// MonthlyCost normalizes the cost to a monthly figure.
func (s *Subscription) MonthlyCost() float64 {
	if s.Frequency == FrequencyMonthly {
		return s.Cost
	}
	return s.Cost / 12
}

// AnnualCost normalizes the cost to an annual figure.
func (s *Subscription) AnnualCost() float64 {
	if s.Frequency == FrequencyAnnual {
		return s.Cost
	}
	return s.Cost * 12
}

// HasReminder reports whether an enabled reminder preference is set.
func (s *Subscription) HasReminder() bool {
	return s.Reminder != nil && s.Reminder.Enabled
}

// DefaultIcon is assigned when a subscription has no explicit icon.
const DefaultIcon = "card"
