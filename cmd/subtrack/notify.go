package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
)

func notifyCmd() *cobra.Command {
	var pendingFlag bool

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Deliver due reminders",
		Long: `Deliver every reminder whose trigger time has passed, printing each
one and marking it delivered. Run it from a shell profile, cron, or a
systemd timer.

With --pending, list undelivered reminders without delivering them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			_, notifier, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if pendingFlag {
				pending, err := notifier.Pending(ctx)
				if err != nil {
					return err
				}
				if len(pending) == 0 {
					fmt.Println(cli.InfoStyle.Render("No pending reminders."))
					return nil
				}
				cli.PrintNotifications(os.Stdout, pending)
				return nil
			}

			delivered, err := notifier.Deliver(ctx)
			if err != nil {
				return err
			}
			if len(delivered) == 0 {
				fmt.Println(cli.InfoStyle.Render("Nothing due."))
				return nil
			}

			cli.PrintNotifications(os.Stdout, delivered)
			return nil
		},
	}

	cmd.Flags().BoolVar(&pendingFlag, "pending", false, "list undelivered reminders without delivering")

	return cmd
}
