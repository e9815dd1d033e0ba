package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/export"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import subscriptions from a JSON export",
		Long: `Read a JSON export and add each subscription to the list. Imported
entries get fresh ids and timestamps; reminder preferences are kept and
scheduled as they come in.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			entries, err := export.ReadJSON(f)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing to import."))
				return nil
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, entry := range entries {
				if _, err := s.Add(ctx, entry); err != nil {
					return fmt.Errorf("failed to import %q: %w", entry.Name, err)
				}
			}

			fmt.Printf("%s Imported %d subscription(s) from %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				len(entries),
				cli.BoldStyle.Render(args[0]))
			return nil
		},
	}
}
