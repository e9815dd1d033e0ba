package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/export"
)

func exportCmd() *cobra.Command {
	var (
		formatFlag string
		outputFlag string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export subscriptions to JSON or XLSX",
		Long: `Write the subscription list to a file for backup or sharing. The JSON
form can be read back with 'subtrack import'; ids and timestamps are
regenerated on import, so an exported file can move between machines.

Examples:
  subtrack export --output backup.json
  subtrack export --format xlsx --output subscriptions.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			format := strings.ToLower(formatFlag)
			switch format {
			case "json", "xlsx":
			default:
				return fmt.Errorf("invalid format %q (expected json or xlsx)", formatFlag)
			}
			if outputFlag == "" {
				return fmt.Errorf("--output is required")
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			subscriptions := s.Subscriptions()

			f, err := os.Create(outputFlag)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", outputFlag, err)
			}
			defer func() { _ = f.Close() }()

			switch format {
			case "json":
				err = export.WriteJSON(f, subscriptions)
			case "xlsx":
				err = export.WriteXLSX(f, subscriptions)
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s Exported %d subscription(s) to %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				len(subscriptions),
				cli.BoldStyle.Render(outputFlag))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "json", "output format (json, xlsx)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "output file path (required)")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}
