package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtrack-app/subtrack/internal/model"
)

func exportFixture() []model.Subscription {
	created := time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)
	return []model.Subscription{
		{
			ID:          "sub-1",
			Name:        "Netflix",
			Cost:        15.99,
			Frequency:   model.FrequencyMonthly,
			RenewalDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Category:    "Video",
			Notes:       "family plan",
			Color:       model.CategoryColor("Video"),
			Icon:        model.DefaultIcon,
			CreatedAt:   created,
			UpdatedAt:   created,
			Reminder: &model.Reminder{
				Enabled:       true,
				DaysInAdvance: 3,
				Time:          time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
			},
		},
		{
			ID:          "sub-2",
			Name:        "Domain",
			Cost:        120,
			Frequency:   model.FrequencyAnnual,
			RenewalDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Category:    "Utilities",
			Color:       model.CategoryColor("Utilities"),
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}
}

func TestJSONRoundTripStripsIdentity(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, exportFixture()))

	document := buf.String()
	assert.Contains(t, document, `"renewalDate"`, "field names follow the data model")
	assert.Contains(t, document, `"daysInAdvance": 3`)
	assert.Contains(t, document, "2000-01-01T09:00:00Z", "reminder time serializes as RFC 3339")

	params, err := ReadJSON(strings.NewReader(document))
	require.NoError(t, err)
	require.Len(t, params, 2)

	netflix := params[0]
	assert.Equal(t, "Netflix", netflix.Name)
	assert.InDelta(t, 15.99, netflix.Cost, 0.001)
	assert.Equal(t, model.FrequencyMonthly, netflix.Frequency)
	assert.Equal(t, "family plan", netflix.Notes)
	require.NotNil(t, netflix.Reminder)
	assert.True(t, netflix.Reminder.Enabled)
	assert.Equal(t, 3, netflix.Reminder.DaysInAdvance)
	assert.Equal(t, 9, netflix.Reminder.Time.Hour(), "reminder time round-trips")

	domain := params[1]
	assert.Equal(t, model.FrequencyAnnual, domain.Frequency)
	assert.Nil(t, domain.Reminder)
}

func TestReadJSONRejectsMalformedDocument(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`[{]`))
	assert.Error(t, err)
}

func TestWriteJSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil))

	params, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Empty(t, params)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportFixture()))
	assert.NotZero(t, buf.Len())

	// XLSX files are zip archives.
	assert.Equal(t, []byte{'P', 'K'}, buf.Bytes()[:2])
}
