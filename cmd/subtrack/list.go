package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/stats"
)

func listCmd() *cobra.Command {
	var (
		categoryFlag string
		searchFlag   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List subscriptions",
		Long: `Display all subscriptions, optionally filtered.

Examples:
  subtrack list
  subtrack list --category Video
  subtrack list --search netflix`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			subscriptions := s.Subscriptions()
			if categoryFlag != "" {
				subscriptions = stats.FilterByCategory(subscriptions, categoryFlag)
			}
			if searchFlag != "" {
				subscriptions = stats.Search(subscriptions, searchFlag)
			}

			if len(subscriptions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No subscriptions found. Use 'subtrack add' to create one."))
				return nil
			}

			cli.PrintSubscriptionsTable(os.Stdout, subscriptions, currencyCode())
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "filter by exact category")
	cmd.Flags().StringVar(&searchFlag, "search", "", "case-insensitive search over name, category, and notes")

	return cmd
}
