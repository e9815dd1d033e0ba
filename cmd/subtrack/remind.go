package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
	"github.com/subtrack-app/subtrack/internal/model"
	"github.com/subtrack-app/subtrack/internal/reminder"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Manage renewal reminders",
	}

	cmd.AddCommand(remindSetCmd())
	cmd.AddCommand(remindOffCmd())

	return cmd
}

func remindSetCmd() *cobra.Command {
	var (
		daysFlag int
		atFlag   string
	)

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Enable a reminder for a subscription",
		Long: `Enable a renewal reminder. The notification fires the given number of
days before the renewal date, at the given time of day.

The preference is always saved, even when the notification itself cannot
be scheduled (permission denied, or the trigger would already be in the
past).

Examples:
  subtrack remind set 4f7c... --days 3
  subtrack remind set 4f7c... --days 7 --at 18:30`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if daysFlag < 0 {
				return fmt.Errorf("--days cannot be negative")
			}
			at, err := parseTimeOfDay(atFlag)
			if err != nil {
				return err
			}

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, outcome, err := s.SetReminder(ctx, args[0], &model.Reminder{
				Enabled:       true,
				DaysInAdvance: daysFlag,
				Time:          at,
			})
			if err != nil {
				return err
			}

			printOutcome(sub, outcome)
			return nil
		},
	}

	cmd.Flags().IntVar(&daysFlag, "days", 3, "days before renewal to fire the reminder")
	cmd.Flags().StringVar(&atFlag, "at", "09:00", "time of day, HH:MM")

	return cmd
}

func remindOffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "off <id>",
		Short: "Disable a subscription's reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, _, err := s.SetReminder(ctx, args[0], nil)
			if err != nil {
				return err
			}

			fmt.Printf("%s Reminder off for %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(sub.Name))
			return nil
		},
	}
}

// printOutcome explains a scheduling result to the user. The preference is
// persisted in every case; only the trigger differs.
func printOutcome(sub model.Subscription, outcome reminder.Outcome) {
	switch outcome {
	case reminder.OutcomeScheduled:
		instant := reminder.TriggerInstant(sub.RenewalDate, sub.Reminder.DaysInAdvance, sub.Reminder.Time)
		fmt.Printf("%s Reminder set for %s: %s\n",
			cli.SuccessStyle.Render(cli.BellIcon),
			cli.BoldStyle.Render(sub.Name),
			instant.Format("2006-01-02 15:04"))
	case reminder.OutcomeSuppressed:
		fmt.Printf("%s Reminder saved for %s, but the trigger time has already passed. It will apply after the next renewal date update.\n",
			cli.WarningStyle.Render(cli.WarningIcon),
			cli.BoldStyle.Render(sub.Name))
	case reminder.OutcomePermissionDenied:
		fmt.Printf("%s Reminder saved for %s, but notifications are disabled. Enable them with 'notifications.enabled: true' in the config.\n",
			cli.WarningStyle.Render(cli.WarningIcon),
			cli.BoldStyle.Render(sub.Name))
	case reminder.OutcomeFailed:
		fmt.Printf("%s Reminder saved for %s, but scheduling failed. It will be retried on the next change.\n",
			cli.ErrorStyle.Render(cli.ErrorIcon),
			cli.BoldStyle.Render(sub.Name))
	default:
		fmt.Printf("%s Reminder preference saved for %s\n",
			cli.SuccessStyle.Render(cli.SuccessIcon),
			cli.BoldStyle.Render(sub.Name))
	}
}
