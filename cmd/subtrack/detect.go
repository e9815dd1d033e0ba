package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/detect"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/store"
)

func detectCmd() *cobra.Command {
	var (
		addFlag        bool
		toleranceFlag  float64
		minOccurrences int
	)

	cmd := &cobra.Command{
		Use:   "detect <file.ofx> [file.ofx...]",
		Short: "Find recurring charges in bank exports",
		Long: `Parse OFX/QFX statement exports and look for charges that recur monthly
or annually with a stable amount. Matches are printed as subscription
candidates; with --add they are added to the list under the Other
category for later editing.

Examples:
  subtrack detect checking.ofx
  subtrack detect checking.ofx creditcard.qfx --add`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			parser := detect.NewParser()
			bar := progressbar.Default(int64(len(args)), "parsing statements")

			var charges []detect.Charge
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", path, err)
				}
				parsed, err := parser.ParseFile(f)
				_ = f.Close()
				if err != nil {
					return fmt.Errorf("failed to parse %s: %w", path, err)
				}
				charges = append(charges, parsed...)
				_ = bar.Add(1)
			}
			_ = bar.Finish()

			candidates := detect.Detect(charges, detect.Options{
				Tolerance:      toleranceFlag,
				MinOccurrences: minOccurrences,
			})
			if len(candidates) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring charges found."))
				return nil
			}

			currency := currencyCode()
			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Found %d recurring charge(s)", len(candidates))))
			for _, c := range candidates {
				fmt.Printf("  %s  %s / %s, seen %d times, next renewal ~%s\n",
					cli.BoldStyle.Render(c.Name),
					cli.FormatAmount(c.Cost, currency),
					c.Frequency,
					c.Occurrences,
					c.NextRenewal.Format("2006-01-02"))
			}

			if !addFlag {
				fmt.Println(cli.SubtleStyle.Render("Re-run with --add to track these."))
				return nil
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			for _, c := range candidates {
				sub, err := s.Add(ctx, store.AddParams{
					Name:        c.Name,
					Cost:        c.Cost,
					Frequency:   c.Frequency,
					RenewalDate: c.NextRenewal,
					Category:    model.CategoryOther,
					Notes:       fmt.Sprintf("Detected from bank statement (%d charges since %s)", c.Occurrences, c.FirstCharged.Format("2006-01-02")),
				})
				if err != nil {
					return fmt.Errorf("failed to add %q: %w", c.Name, err)
				}
				fmt.Printf("%s Added %s\n",
					cli.SuccessStyle.Render(cli.SuccessIcon),
					cli.BoldStyle.Render(sub.Name))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&addFlag, "add", false, "add detected candidates as subscriptions")
	cmd.Flags().Float64Var(&toleranceFlag, "tolerance", detect.DefaultTolerance, "allowed relative amount drift between charges")
	cmd.Flags().IntVar(&minOccurrences, "min-occurrences", 0, "minimum monthly charges required (default 3)")

	return cmd
}
