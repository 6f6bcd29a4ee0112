package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Daily reservation grid commands",
	}

	cmd.AddCommand(newDayShowCmd())

	return cmd
}

func newDayShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <date>",
		Short: "Show the reservation grid for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Day

			if err := client.Get(fmt.Sprintf("/api/v1/days/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
