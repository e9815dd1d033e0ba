package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/model"
)

func monthlyCharges(payee string, amount float64, months int) []Charge {
	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	charges := make([]Charge, 0, months)
	for i := 0; i < months; i++ {
		charges = append(charges, Charge{
			Date:   start.AddDate(0, i, 0),
			Payee:  payee,
			Amount: amount,
		})
	}
	return charges
}

func TestDetectMonthlySubscription(t *testing.T) {
	charges := monthlyCharges("NETFLIX.COM", 15.99, 4)

	candidates := Detect(charges, Options{})
	require.Len(t, candidates, 1)

	c := candidates[0]
	assert.Equal(t, "NETFLIX.COM", c.Name)
	assert.Equal(t, model.FrequencyMonthly, c.Frequency)
	assert.InDelta(t, 15.99, c.Cost, 0.001)
	assert.Equal(t, 4, c.Occurrences)
	assert.True(t, c.NextRenewal.Equal(time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)))
}

func TestDetectIgnoresOneOffCharges(t *testing.T) {
	charges := []Charge{
		{Date: time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), Payee: "HARDWARE STORE", Amount: 89.50},
		{Date: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), Payee: "RESTAURANT", Amount: 45},
	}

	assert.Empty(t, Detect(charges, Options{}))
}

func TestDetectRejectsUnstableAmounts(t *testing.T) {
	charges := monthlyCharges("GROCERIES", 80, 4)
	charges[2].Amount = 140

	assert.Empty(t, Detect(charges, Options{}))
}

func TestDetectToleratesPriceCreep(t *testing.T) {
	charges := monthlyCharges("SPOTIFY", 9.99, 3)
	charges = append(charges, Charge{
		Date:   charges[2].Date.AddDate(0, 1, 0),
		Payee:  "Spotify",
		Amount: 10.99,
	})

	candidates := Detect(charges, Options{})
	require.Len(t, candidates, 1, "payee grouping is case-insensitive and 10%% creep is within tolerance")
	assert.InDelta(t, 10.99, candidates[0].Cost, 0.001, "cost tracks the latest charge")
}

func TestDetectRejectsMultipleChargesPerMonth(t *testing.T) {
	charges := monthlyCharges("COFFEE SHOP", 4.5, 3)
	charges = append(charges, Charge{
		Date:   charges[1].Date.AddDate(0, 0, 3),
		Payee:  "COFFEE SHOP",
		Amount: 4.5,
	})

	assert.Empty(t, Detect(charges, Options{}))
}

func TestDetectAnnualSubscription(t *testing.T) {
	charges := []Charge{
		{Date: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Payee: "DOMAIN REGISTRAR", Amount: 120},
		{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Payee: "DOMAIN REGISTRAR", Amount: 120},
		{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Payee: "DOMAIN REGISTRAR", Amount: 120},
	}

	candidates := Detect(charges, Options{})
	require.Len(t, candidates, 1)
	assert.Equal(t, model.FrequencyAnnual, candidates[0].Frequency)
	assert.True(t, candidates[0].NextRenewal.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDetectSortsByMonthlyCost(t *testing.T) {
	charges := monthlyCharges("NETFLIX.COM", 15.99, 3)
	charges = append(charges, monthlyCharges("SPOTIFY", 9.99, 3)...)
	charges = append(charges, monthlyCharges("ICLOUD", 0.99, 3)...)

	candidates := Detect(charges, Options{})
	require.Len(t, candidates, 3)
	assert.Equal(t, "NETFLIX.COM", candidates[0].Name)
	assert.Equal(t, "SPOTIFY", candidates[1].Name)
	assert.Equal(t, "ICLOUD", candidates[2].Name)
}

func TestDetectMinOccurrences(t *testing.T) {
	charges := monthlyCharges("NETFLIX.COM", 15.99, 2)

	assert.Empty(t, Detect(charges, Options{}), "two monthly charges are not enough by default")
	assert.Len(t, Detect(charges, Options{MinOccurrences: 2}), 1)
}
