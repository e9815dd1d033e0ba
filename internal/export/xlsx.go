package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/stats"
)

const sheetName = "Subscriptions"

var xlsxHeader = []string{
	"Name", "Cost", "Frequency", "Monthly Cost", "Renewal Date", "Category", "Notes",
}

// WriteXLSX writes the subscription list as a spreadsheet: one row per
// subscription plus a totals row.
func WriteXLSX(w io.Writer, subscriptions []model.Subscription) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, title := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i := range subscriptions {
		sub := &subscriptions[i]
		row := i + 2
		values := []any{
			sub.Name,
			sub.Cost,
			string(sub.Frequency),
			sub.MonthlyCost(),
			sub.RenewalDate.Format("2006-01-02"),
			sub.Category,
			sub.Notes,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	totalRow := len(subscriptions) + 3
	totalLabel, err := excelize.CoordinatesToCellName(1, totalRow)
	if err != nil {
		return fmt.Errorf("failed to compute totals cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalLabel, "Monthly total"); err != nil {
		return fmt.Errorf("failed to write totals label: %w", err)
	}
	totalCell, err := excelize.CoordinatesToCellName(4, totalRow)
	if err != nil {
		return fmt.Errorf("failed to compute totals cell: %w", err)
	}
	if err := f.SetCellValue(sheetName, totalCell, stats.MonthlyTotal(subscriptions)); err != nil {
		return fmt.Errorf("failed to write totals: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}
