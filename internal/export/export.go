// Package export implements the export/import boundary: the subscription
// list as a human-readable JSON document, plus an XLSX report.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/store"
)

// WriteJSON writes the full subscription list as an indented JSON document.
// Field names follow the data model; reminder times serialize as RFC 3339.
func WriteJSON(w io.Writer, subscriptions []model.Subscription) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(subscriptions); err != nil {
		return fmt.Errorf("failed to encode subscriptions: %w", err)
	}
	return nil
}

// ReadJSON parses an exported document into add parameters. The id and
// timestamp fields are deliberately dropped so re-importing always creates
// fresh records; reminder preferences round-trip intact.
func ReadJSON(r io.Reader) ([]store.AddParams, error) {
	var imported []model.Subscription
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&imported); err != nil {
		return nil, fmt.Errorf("failed to parse import document: %w", err)
	}

	params := make([]store.AddParams, 0, len(imported))
	for _, sub := range imported {
		params = append(params, store.AddParams{
			Name:        sub.Name,
			Cost:        sub.Cost,
			Frequency:   sub.Frequency,
			RenewalDate: sub.RenewalDate,
			Category:    sub.Category,
			Notes:       sub.Notes,
			Icon:        sub.Icon,
			Reminder:    sub.Reminder,
		})
	}

	return params, nil
}
