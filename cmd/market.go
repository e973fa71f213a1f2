package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/telfer/alp/internal/output"
	"github.com/telfer/alp/pkg/alpaca"
)

// newClockCmd creates the market clock command.
func newClockCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Show the market clock",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}
			return runClock(cmd, opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runClock(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clock, err := opts.client().GetClock(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch clock: %w", err)
	}

	state := "closed"
	if clock.IsOpen {
		state = "open"
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.KeyValue([][2]string{
		{"Market", state},
		{"Time", clock.Timestamp.Format(time.RFC3339)},
		{"Next Open", clock.NextOpen.Format(time.RFC3339)},
		{"Next Close", clock.NextClose.Format(time.RFC3339)},
	}, clock)
}

// newCalendarCmd creates the trading-calendar command.
func newCalendarCmd(load optionsLoader) *cobra.Command {
	var (
		flagStart string
		flagEnd   string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show trading calendar entries",
		Long: `Show the trading calendar for a date range.

Examples:
  alp calendar --start 2024-01-02 --end 2024-01-31
  alp calendar --start 2024-07-04 --end 2024-07-04`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			var start, end time.Time
			if flagStart != "" {
				start, err = time.Parse(alpaca.DateLayout, flagStart)
				if err != nil {
					return fmt.Errorf("invalid start date %q (want YYYY-MM-DD)", flagStart)
				}
			}
			if flagEnd != "" {
				end, err = time.Parse(alpaca.DateLayout, flagEnd)
				if err != nil {
					return fmt.Errorf("invalid end date %q (want YYYY-MM-DD)", flagEnd)
				}
			}

			return runCalendar(cmd, opts, start, end)
		},
	}

	cmd.Flags().StringVar(&flagStart, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "End date (YYYY-MM-DD)")
	cmd.SilenceUsage = true

	return cmd
}

func runCalendar(cmd *cobra.Command, opts clientOptions, start, end time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	days, err := opts.client().GetCalendar(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to fetch calendar: %w", err)
	}

	if len(days) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No trading days in range")
		return nil
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	headers := []string{"Date", "Open", "Close"}
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		rows = append(rows, []string{day.Date, day.Open, day.Close})
	}

	return formatter.Table(headers, rows)
}

func init() {
	rootCmd.AddCommand(newClockCmd(loadClientOptions))
	rootCmd.AddCommand(newCalendarCmd(loadClientOptions))
}
