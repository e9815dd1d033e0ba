// Package stats derives read-only statistics from a subscription list.
// Every function here is pure: no mutation, no I/O, no error paths. An empty
// list yields zero totals and empty results, never an error.
package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/subtrack-app/subtrack/internal/model"
)

// DefaultUpcomingWindowDays is the lookahead used by the dashboard.
const DefaultUpcomingWindowDays = 7

// Stats is the aggregate snapshot shown on the dashboard.
type Stats struct {
	CategoryBreakdown   map[string]float64
	UpcomingRenewals    []model.Subscription
	TotalMonthly        float64
	TotalAnnual         float64
	ActiveSubscriptions int
}

// MonthlyTotal sums the monthly-normalized cost of every subscription.
// Annual costs are converted down; this fold is intentionally independent of
// AnnualTotal rather than derived from it.
func MonthlyTotal(subscriptions []model.Subscription) float64 {
	var total float64
	for i := range subscriptions {
		total += subscriptions[i].MonthlyCost()
	}
	return total
}

// AnnualTotal sums the annual-normalized cost of every subscription.
// Monthly costs are converted up, mirroring MonthlyTotal's independent fold.
func AnnualTotal(subscriptions []model.Subscription) float64 {
	var total float64
	for i := range subscriptions {
		total += subscriptions[i].AnnualCost()
	}
	return total
}

// CategoryBreakdown maps each category present in the list to its aggregate
// monthly-normalized cost. Categories with no subscriptions do not appear.
func CategoryBreakdown(subscriptions []model.Subscription) map[string]float64 {
	breakdown := make(map[string]float64)
	for i := range subscriptions {
		sub := &subscriptions[i]
		breakdown[sub.Category] += sub.MonthlyCost()
	}
	return breakdown
}

// UpcomingRenewals returns subscriptions whose renewal date falls within
// [now, now+windowDays], inclusive of now, sorted ascending by renewal date.
// Renewals already in the past are excluded.
func UpcomingRenewals(subscriptions []model.Subscription, now time.Time, windowDays int) []model.Subscription {
	cutoff := now.Add(time.Duration(windowDays) * 24 * time.Hour)

	var upcoming []model.Subscription
	for i := range subscriptions {
		renewal := subscriptions[i].RenewalDate
		if renewal.Before(now) || renewal.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, subscriptions[i])
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].RenewalDate.Before(upcoming[j].RenewalDate)
	})

	return upcoming
}

// Search returns subscriptions whose name, category, or notes contain the
// query, case-insensitively. Relative order is preserved. An empty query
// matches everything.
func Search(subscriptions []model.Subscription, query string) []model.Subscription {
	query = strings.ToLower(query)

	var matches []model.Subscription
	for i := range subscriptions {
		sub := &subscriptions[i]
		if strings.Contains(strings.ToLower(sub.Name), query) ||
			strings.Contains(strings.ToLower(sub.Category), query) ||
			(sub.Notes != "" && strings.Contains(strings.ToLower(sub.Notes), query)) {
			matches = append(matches, subscriptions[i])
		}
	}
	return matches
}

// FilterByCategory returns subscriptions whose category matches exactly.
func FilterByCategory(subscriptions []model.Subscription, category string) []model.Subscription {
	var matches []model.Subscription
	for i := range subscriptions {
		if subscriptions[i].Category == category {
			matches = append(matches, subscriptions[i])
		}
	}
	return matches
}

// Compute builds the full dashboard snapshot for the given list and instant.
func Compute(subscriptions []model.Subscription, now time.Time) Stats {
	return Stats{
		TotalMonthly:        MonthlyTotal(subscriptions),
		TotalAnnual:         AnnualTotal(subscriptions),
		ActiveSubscriptions: len(subscriptions),
		UpcomingRenewals:    UpcomingRenewals(subscriptions, now, DefaultUpcomingWindowDays),
		CategoryBreakdown:   CategoryBreakdown(subscriptions),
	}
}
