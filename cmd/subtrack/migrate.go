package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/storage"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Bring the database schema up to the current version. Every command runs
pending migrations on startup, so this is mainly useful for verifying a
database file by hand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sqlite, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sqlite.Close() }()

			fmt.Printf("%s Database schema is at version %d\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				storage.ExpectedSchemaVersion)
			return nil
		},
	}
}
