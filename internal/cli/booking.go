package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Booking commands",
	}

	cmd.AddCommand(newBookingConfirmCmd())
	cmd.AddCommand(newBookingCancelCmd())
	cmd.AddCommand(newBookingListCmd())

	return cmd
}

func newBookingConfirmCmd() *cobra.Command {
	var (
		slots         []string
		purpose       string
		purposeDetail string
		people        int
	)

	cmd := &cobra.Command{
		Use:   "confirm <date>",
		Short: "Confirm a booking of one or more slots on a date",
		Long: `Confirm a booking of one or more slots on a date.

Slots are given as hour-court pairs, e.g. --slot 9-A --slot 10-B.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(slots) == 0 {
				return fmt.Errorf("at least one --slot is required")
			}

			req := map[string]any{
				"slots":            slots,
				"purpose":          purpose,
				"purpose_detail":   purposeDetail,
				"number_of_people": people,
			}
			var result ConfirmedBooking

			if err := client.Post(fmt.Sprintf("/api/v1/days/%s/bookings", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&slots, "slot", nil, "Slot to book as hour-court, e.g. 9-A (repeatable, required)")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Purpose: tournament or other (required)")
	cmd.Flags().StringVar(&purposeDetail, "detail", "", "Purpose detail (required)")
	cmd.Flags().IntVar(&people, "people", 0, "Number of people (required)")
	_ = cmd.MarkFlagRequired("slot")
	_ = cmd.MarkFlagRequired("purpose")
	_ = cmd.MarkFlagRequired("detail")
	_ = cmd.MarkFlagRequired("people")

	return cmd
}

func newBookingCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <date> <slot>",
		Short: "Cancel one booked slot, e.g. cancel 2025-07-01 9-A",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/days/%s/slots/%s", args[0], args[1])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Cancelled")
			return nil
		},
	}
}

func newBookingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all confirmed bookings across dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result BookingList

			if err := client.Get("/api/v1/bookings", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
