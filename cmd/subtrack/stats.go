package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/stats"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show spending totals and category breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snapshot := stats.Compute(s.Subscriptions(), time.Now())
			cli.PrintStats(os.Stdout, snapshot, currencyCode())
			return nil
		},
	}
}
