// Package detect finds recurring charges in bank exports and suggests them
// as subscriptions to track.
package detect

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/subtrack-app/subtrack/internal/model"
)

// DefaultTolerance is the maximum relative change between consecutive
// charges for a payee to still count as one subscription.
const DefaultTolerance = 0.15

// Candidate is a recurring charge group that looks like a subscription.
type Candidate struct {
	FirstCharged time.Time
	LastCharged  time.Time
	NextRenewal  time.Time
	Name         string
	Frequency    model.Frequency
	Cost         float64
	Occurrences  int
}

// Options tunes detection.
type Options struct {
	// Tolerance is the allowed relative amount drift between consecutive
	// charges; zero means DefaultTolerance.
	Tolerance float64
	// MinOccurrences is the minimum number of monthly charges required;
	// zero means 3. Annual cadences always need just 2.
	MinOccurrences int
}

// Detect groups charges by payee (case-insensitive) and returns the groups
// that recur at a monthly or annual cadence with a stable amount. Candidates
// are sorted by monthly-normalized cost, highest first.
func Detect(charges []Charge, opts Options) []Candidate {
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	minOccurrences := opts.MinOccurrences
	if minOccurrences <= 0 {
		minOccurrences = 3
	}

	byPayee := make(map[string][]Charge)
	displayNames := make(map[string]string)
	for _, charge := range charges {
		key := strings.ToLower(charge.Payee)
		if key == "" {
			continue
		}
		byPayee[key] = append(byPayee[key], charge)
		displayNames[key] = charge.Payee
	}

	var candidates []Candidate
	for key, group := range byPayee {
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		if !amountsWithinTolerance(group, tolerance) {
			continue
		}

		frequency, ok := cadence(group, minOccurrences)
		if !ok {
			continue
		}

		last := group[len(group)-1]
		next := last.Date.AddDate(0, 1, 0)
		if frequency == model.FrequencyAnnual {
			next = last.Date.AddDate(1, 0, 0)
		}

		candidates = append(candidates, Candidate{
			Name:         displayNames[key],
			Cost:         last.Amount,
			Frequency:    frequency,
			FirstCharged: group[0].Date,
			LastCharged:  last.Date,
			NextRenewal:  next,
			Occurrences:  len(group),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].monthlyCost() > candidates[j].monthlyCost()
	})

	return candidates
}

func (c *Candidate) monthlyCost() float64 {
	if c.Frequency == model.FrequencyMonthly {
		return c.Cost
	}
	return c.Cost / 12
}

// cadence classifies the charge intervals as monthly or annual. Monthly
// groups must charge at most once per calendar month; annual groups need two
// charges roughly a year apart.
func cadence(group []Charge, minOccurrences int) (model.Frequency, bool) {
	if len(group) >= 2 && isAnnualPattern(group) {
		return model.FrequencyAnnual, true
	}
	if len(group) >= minOccurrences && isMonthlyPattern(group) {
		return model.FrequencyMonthly, true
	}
	return "", false
}

// isMonthlyPattern checks that charges occur at most once per calendar month
// and in consecutive-ish months (no gap longer than ~2 months).
func isMonthlyPattern(group []Charge) bool {
	byMonth := make(map[string]int)
	for _, charge := range group {
		byMonth[charge.Date.Format("2006-01")]++
	}
	for _, count := range byMonth {
		if count != 1 {
			return false
		}
	}

	for i := 1; i < len(group); i++ {
		gap := group[i].Date.Sub(group[i-1].Date)
		if gap > 62*24*time.Hour {
			return false
		}
	}
	return true
}

// isAnnualPattern checks that consecutive charges are roughly a year apart.
func isAnnualPattern(group []Charge) bool {
	for i := 1; i < len(group); i++ {
		gap := group[i].Date.Sub(group[i-1].Date)
		if gap < 330*24*time.Hour || gap > 400*24*time.Hour {
			return false
		}
	}
	return len(group) >= 2
}

// amountsWithinTolerance checks consecutive charges against the relative
// tolerance; comparing neighbors handles gradual price creep better than
// comparing against the average.
func amountsWithinTolerance(group []Charge, tolerance float64) bool {
	for i := 1; i < len(group); i++ {
		prev := group[i-1].Amount
		diff := math.Abs(group[i].Amount-prev) / prev
		if diff > tolerance {
			return false
		}
	}
	return true
}
