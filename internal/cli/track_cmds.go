package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/interval"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var comment string
	var connectorID string
	var continueSlotID string

	cmd := &cobra.Command{
		Use:   "start <ticket>",
		Short: "Start tracking time against a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			ticketID, err := app.Aliases.Resolve(ctx, args[0])
			if err != nil {
				return err
			}
			if connectorID == "" {
				connectorID = app.DefaultConnector
			}

			slot, err := app.Tracking.Start(ctx, ticketID, connectorID, comment, continueSlotID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSlot(slot))
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment for a fresh slot; prevents continuing an existing one")
	cmd.Flags().StringVar(&connectorID, "connector", "", "Connector the ticket belongs to")
	cmd.Flags().StringVar(&continueSlotID, "continue", "", "Resume this specific slot")

	return cmd
}

func newContinueCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "continue [slot]",
		Short: "Resume a stopped slot, the most recent one by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			slotID := ""
			if len(args) > 0 {
				slotID = args[0]
			} else {
				latest, err := app.Tracking.Latest(ctx)
				if err != nil {
					return err
				}
				if latest == nil {
					fmt.Println(formatter.Dim("nothing tracked yet"))
					return nil
				}
				slotID = latest.ID
			}

			slot, err := app.Tracking.Start(ctx, "", "", "", slotID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [slot]",
		Short: "Stop the running slot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slotID := ""
			if len(args) > 0 {
				slotID = args[0]
			}

			slot, err := app.Tracking.Stop(context.Background(), slotID)
			if err != nil {
				return err
			}
			if slot == nil {
				fmt.Println(formatter.Dim("nothing is running"))
				return nil
			}

			fmt.Print(formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <slot> <duration>",
		Short: "Set a slot's total duration, e.g. 1h30m, :45 or .25",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := interval.Parse(args[1])
			if err != nil {
				return err
			}

			slot, err := app.Tracking.Edit(context.Background(), args[0], secondsToDuration(seconds))
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newCombineCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "combine <slot> <slot>",
		Short: "Merge two slots of the same ticket into one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := app.Tracking.Combine(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSlot(slot))
			return nil
		},
	}
}

func newRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <slot>",
		Short: "Delete an un-sent slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := app.Tracking.Delete(context.Background(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(formatter.Dim("no such un-sent slot"))
				return nil
			}

			fmt.Println("deleted")
			return nil
		},
	}
}

func newCommentCmd(app *App) *cobra.Command {
	var slotID string

	cmd := &cobra.Command{
		Use:   "comment <text>",
		Short: "Set a slot's comment (write-once)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if slotID == "" {
				latest, err := app.Tracking.Latest(ctx)
				if err != nil {
					return err
				}
				if latest == nil {
					fmt.Println(formatter.Dim("nothing tracked yet"))
					return nil
				}
				slotID = latest.ID
			}

			applied, err := app.Tracking.Comment(ctx, slotID, args[0])
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println(formatter.Dim("slot already has a comment"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&slotID, "slot", "", "Slot to comment; defaults to the most recent one")

	return cmd
}

func newTagCmd(app *App) *cobra.Command {
	var slotID string
	var all bool

	cmd := &cobra.Command{
		Use:   "tag <category>",
		Short: "Set a slot's category, overwriting any existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if slotID == "" && !all {
				latest, err := app.Tracking.Latest(ctx)
				if err != nil {
					return err
				}
				if latest == nil {
					fmt.Println(formatter.Dim("nothing tracked yet"))
					return nil
				}
				slotID = latest.ID
			}

			applied, err := app.Tracking.Tag(ctx, args[0], slotID)
			if err != nil {
				return err
			}
			if !applied {
				fmt.Println(formatter.Dim("no slot tagged"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&slotID, "slot", "", "Slot to tag; defaults to the most recent one")
	cmd.Flags().BoolVar(&all, "all", false, "Tag every un-sent slot")

	return cmd
}
