package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one subscription in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, err := s.Get(args[0])
			if err != nil {
				return err
			}

			currency := currencyCode()
			fmt.Println(cli.TitleStyle.Render(sub.Name))
			fmt.Printf("  Cost:      %s / %s\n", cli.FormatAmount(sub.Cost, currency), sub.Frequency)
			fmt.Printf("  Monthly:   %s\n", cli.FormatAmount(sub.MonthlyCost(), currency))
			fmt.Printf("  Renewal:   %s\n", sub.RenewalDate.Format("2006-01-02"))
			fmt.Printf("  Category:  %s\n", cli.CategoryStyle(sub.Color).Render(sub.Category))
			if sub.Notes != "" {
				fmt.Printf("  Notes:     %s\n", sub.Notes)
			}
			if sub.HasReminder() {
				fmt.Printf("  Reminder:  %s %d day(s) before, at %s\n",
					cli.BellIcon,
					sub.Reminder.DaysInAdvance,
					sub.Reminder.Time.Format("15:04"))
			} else {
				fmt.Printf("  Reminder:  %s\n", cli.SubtleStyle.Render("off"))
			}
			fmt.Println(cli.SubtleStyle.Render("  id: " + sub.ID))
			fmt.Println(cli.SubtleStyle.Render("  created " + sub.CreatedAt.Format("2006-01-02") + ", updated " + sub.UpdatedAt.Format("2006-01-02")))
			return nil
		},
	}
}
