package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/store"
)

func addCmd() *cobra.Command {
	var (
		costFlag      float64
		frequencyFlag string
		renewalFlag   string
		categoryFlag  string
		notesFlag     string
		iconFlag      string
		remindDays    int
		remindAt      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a subscription",
		Long: `Record a new recurring payment.

Examples:
  subtrack add Netflix --cost 15.99 --frequency monthly --renewal 2025-07-01 --category Video
  subtrack add "Domain renewal" --cost 120 --frequency annual --renewal 2026-01-01 --remind-days 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("subscription name cannot be empty")
			}
			if costFlag <= 0 {
				return fmt.Errorf("--cost must be positive")
			}

			frequency, err := parseFrequency(frequencyFlag)
			if err != nil {
				return err
			}
			renewalDate, err := parseDate(renewalFlag)
			if err != nil {
				return err
			}

			var r *model.Reminder
			if remindDays > 0 {
				at, timeErr := parseTimeOfDay(remindAt)
				if timeErr != nil {
					return timeErr
				}
				r = &model.Reminder{Enabled: true, DaysInAdvance: remindDays, Time: at}
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, err := s.Add(ctx, store.AddParams{
				Name:        name,
				Cost:        costFlag,
				Frequency:   frequency,
				RenewalDate: renewalDate,
				Category:    resolveCategory(categoryFlag),
				Notes:       notesFlag,
				Icon:        iconFlag,
				Reminder:    r,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s Added %s (%s, renews %s)\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(sub.Name),
				cli.FormatAmount(sub.Cost, currencyCode()),
				sub.RenewalDate.Format("2006-01-02"))
			fmt.Println(cli.SubtleStyle.Render("   id: " + sub.ID))
			return nil
		},
	}

	cmd.Flags().Float64Var(&costFlag, "cost", 0, "cost per billing period (required)")
	cmd.Flags().StringVar(&frequencyFlag, "frequency", "monthly", "billing frequency (monthly, annual)")
	cmd.Flags().StringVar(&renewalFlag, "renewal", "", "next renewal date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&categoryFlag, "category", model.CategoryOther, "category ("+strings.Join(model.Categories, ", ")+")")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "free-form notes")
	cmd.Flags().StringVar(&iconFlag, "icon", "", "icon identifier")
	cmd.Flags().IntVar(&remindDays, "remind-days", 0, "schedule a reminder this many days before renewal")
	cmd.Flags().StringVar(&remindAt, "remind-at", "09:00", "reminder time of day, HH:MM")
	_ = cmd.MarkFlagRequired("cost")
	_ = cmd.MarkFlagRequired("renewal")

	return cmd
}
