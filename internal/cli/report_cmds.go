package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tally/internal/cli/formatter"
	"github.com/alexanderramin/tally/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func secondsToDuration(seconds int64) time.Duration {
	return time.Duration(seconds) * time.Second
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status [date]",
		Short: "Show per-ticket totals for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(args)
			if err != nil {
				return err
			}

			totals, err := app.Tracking.Status(context.Background(), date)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatStatus(date, totals))
			return nil
		},
	}
}

func newReviewCmd(app *App) *cobra.Command {
	var since string
	var incomplete bool

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review un-sent slots with ticket metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			from := time.Unix(0, 0)
			if since != "" {
				parsed, err := parseDate([]string{since})
				if err != nil {
					return err
				}
				from = parsed
			}

			summary, err := app.Review.GetSummary(context.Background(), from, incomplete)
			if err != nil {
				if errors.Is(err, service.ErrNothingToReview) {
					fmt.Println(formatter.Dim("nothing to review"))
					return nil
				}
				return err
			}

			fmt.Print(formatter.FormatReview(summary))
			return nil
		},
	}

	cmd.Flags().StringVar(&since, "since", "", "Only slots started after this date")
	cmd.Flags().BoolVar(&incomplete, "incomplete", false, "Only slots missing a comment or category")

	return cmd
}

func newSendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "send",
		Short: "Transmit the un-sent backlog to the ticket backends",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Send.Send(context.Background())
			if err != nil {
				if errors.Is(err, service.ErrNothingToReview) {
					fmt.Println(formatter.Dim("nothing to send"))
					return nil
				}
				return err
			}

			fmt.Print(formatter.FormatSendResult(result))
			return nil
		},
	}
}

func newCheckCmd(app *App) *cobra.Command {
	var dateArg string

	cmd := &cobra.Command{
		Use:   "check [day|week|fortnight|month]",
		Short: "Check billable percentage for a period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			keyword := string(service.PeriodWeek)
			if len(args) > 0 {
				keyword = args[0]
			}
			period, err := service.ParsePeriod(keyword)
			if err != nil {
				return err
			}

			date := time.Now()
			if dateArg != "" {
				if date, err = parseDate([]string{dateArg}); err != nil {
					return err
				}
			}

			summary, err := app.Billing.GetBillableSummary(ctx, period, date)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatBillableSummary(summary))

			if period == service.PeriodMonth {
				stats, err := app.Billing.MonthStats(ctx, date)
				if err != nil {
					return err
				}
				fmt.Println()
				fmt.Print(formatter.FormatMonthStats(stats, summary.TotalSeconds()))
			}
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &dateArg, "Date inside the period; defaults to today")

	return cmd
}

func addDateFlag(flags *pflag.FlagSet, target *string, usage string) {
	flags.StringVar(target, "date", "", usage)
}

func newFrequentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "frequent",
		Short: "Show the most recorded tickets",
		RunE: func(cmd *cobra.Command, args []string) error {
			frequencies, err := app.Tracking.Frequent(context.Background())
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatFrequent(frequencies))
			return nil
		},
	}
}

func newTargetCmd(app *App) *cobra.Command {
	var dateArg string

	cmd := &cobra.Command{
		Use:   "target <days>",
		Short: "Override a month's working days, as a count or a day list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if dateArg != "" {
				var err error
				if date, err = parseDate([]string{dateArg}); err != nil {
					return err
				}
			}

			if err := app.Billing.WriteTarget(args[0], date); err != nil {
				return err
			}

			fmt.Printf("target for %s set to %s\n", date.Format("2006-01"), args[0])
			return nil
		},
	}

	addDateFlag(cmd.Flags(), &dateArg, "A date inside the month to override; defaults to the current month")

	return cmd
}

func newAliasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage short names for tickets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <ticket> <alias>",
			Short: "Register an alias for a ticket",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Aliases.Add(context.Background(), args[0], args[1])
			},
		},
		&cobra.Command{
			Use:   "rm <alias>",
			Short: "Remove an alias",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				removed, err := app.Aliases.Remove(context.Background(), args[0])
				if err != nil {
					return err
				}
				if !removed {
					fmt.Println(formatter.Dim("no such alias"))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "list [ticket]",
			Short: "List aliases, optionally for one ticket",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ticketID := ""
				if len(args) > 0 {
					ticketID = args[0]
				}

				aliases, err := app.Aliases.List(context.Background(), ticketID)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(aliases))
				for _, a := range aliases {
					rows = append(rows, []string{a.Alias, a.TicketID})
				}
				fmt.Print(formatter.RenderTable([]string{"ALIAS", "TICKET"}, rows))
				return nil
			},
		},
	)

	return cmd
}
