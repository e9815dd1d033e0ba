package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/store"
)

func editCmd() *cobra.Command {
	var (
		nameFlag      string
		costFlag      float64
		frequencyFlag string
		renewalFlag   string
		categoryFlag  string
		notesFlag     string
		iconFlag      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a subscription",
		Long: `Change one or more fields of an existing subscription. Only the
flags you pass are changed; everything else stays as it is.

Examples:
  subtrack edit 4f7c... --cost 17.99
  subtrack edit 4f7c... --renewal 2025-08-01 --category Music`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var params store.UpdateParams
			if cmd.Flags().Changed("name") {
				params.Name = &nameFlag
			}
			if cmd.Flags().Changed("cost") {
				if costFlag <= 0 {
					return fmt.Errorf("--cost must be positive")
				}
				params.Cost = &costFlag
			}
			if cmd.Flags().Changed("frequency") {
				frequency, err := parseFrequency(frequencyFlag)
				if err != nil {
					return err
				}
				params.Frequency = &frequency
			}
			if cmd.Flags().Changed("renewal") {
				renewalDate, err := parseDate(renewalFlag)
				if err != nil {
					return err
				}
				params.RenewalDate = &renewalDate
			}
			if cmd.Flags().Changed("category") {
				category := resolveCategory(categoryFlag)
				params.Category = &category
			}
			if cmd.Flags().Changed("notes") {
				params.Notes = &notesFlag
			}
			if cmd.Flags().Changed("icon") {
				params.Icon = &iconFlag
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, err := s.Update(ctx, args[0], params)
			if err != nil {
				return err
			}

			fmt.Printf("%s Updated %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(sub.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "new name")
	cmd.Flags().Float64Var(&costFlag, "cost", 0, "new cost per billing period")
	cmd.Flags().StringVar(&frequencyFlag, "frequency", "", "new billing frequency (monthly, annual)")
	cmd.Flags().StringVar(&renewalFlag, "renewal", "", "new renewal date, YYYY-MM-DD")
	cmd.Flags().StringVar(&categoryFlag, "category", "", "new category")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "new notes")
	cmd.Flags().StringVar(&iconFlag, "icon", "", "new icon identifier")

	return cmd
}
