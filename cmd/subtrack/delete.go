package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subtrack-app/subtrack/internal/cli"
)

func deleteCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a subscription",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, _, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sub, err := s.Get(args[0])
			if err != nil {
				return err
			}

			if !forceFlag {
				fmt.Printf("Delete %s (%s)? [y/N]: ",
					cli.BoldStyle.Render(sub.Name),
					cli.FormatAmount(sub.Cost, currencyCode()))
				reader := bufio.NewReader(os.Stdin)
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Println("Cancelled.")
					return nil
				}
			}

			if err := s.Delete(ctx, sub.ID); err != nil {
				return err
			}

			fmt.Printf("%s Deleted %s\n",
				cli.SuccessStyle.Render(cli.SuccessIcon),
				cli.BoldStyle.Render(sub.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "skip the confirmation prompt")

	return cmd
}
