package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/stats"
)

func upcomingCmd() *cobra.Command {
	var daysFlag int

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "Show renewals due soon",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if daysFlag < 0 {
				return fmt.Errorf("--days cannot be negative")
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			upcoming := stats.UpcomingRenewals(s.Subscriptions(), time.Now(), daysFlag)
			if len(upcoming) == 0 {
				fmt.Printf("%s Nothing renews within %d days.\n", cli.InfoStyle.Render(cli.CalendarIcon), daysFlag)
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Renewing within %d days", cli.CalendarIcon, daysFlag)))
			cli.PrintUpcoming(os.Stdout, upcoming, currencyCode())
			return nil
		},
	}

	cmd.Flags().IntVar(&daysFlag, "days", stats.DefaultUpcomingWindowDays, "window size in days")

	return cmd
}
