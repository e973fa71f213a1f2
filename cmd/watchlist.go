package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/telfer/alp/internal/output"
	"github.com/telfer/alp/pkg/alpaca"
)

// newWatchlistCmd creates the watchlist command group.
func newWatchlistCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage watchlists",
		Long: `Create, inspect, and modify watchlists.

Examples:
  alp watchlist list --with-assets
  alp watchlist create Tech AAPL GOOG MSFT
  alp watchlist update ID --symbols GRMN
  alp watchlist add ID TSLA`,
	}

	cmd.AddCommand(newWatchlistListCmd(load))
	cmd.AddCommand(newWatchlistGetCmd(load))
	cmd.AddCommand(newWatchlistCreateCmd(load))
	cmd.AddCommand(newWatchlistUpdateCmd(load))
	cmd.AddCommand(newWatchlistAddCmd(load))
	cmd.AddCommand(newWatchlistRemoveCmd(load))
	cmd.AddCommand(newWatchlistDeleteCmd(load))
	cmd.AddCommand(newWatchlistClearCmd(load))
	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistListCmd(load optionsLoader) *cobra.Command {
	var flagWithAssets bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			watchlists, err := opts.client().GetWatchlists(ctx, flagWithAssets)
			if err != nil {
				return fmt.Errorf("failed to fetch watchlists: %w", err)
			}

			if len(watchlists) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No watchlists")
				return nil
			}

			formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
			headers := []string{"ID", "Name"}
			if flagWithAssets {
				headers = append(headers, "Symbols")
			}
			rows := make([][]string, 0, len(watchlists))
			for _, watchlist := range watchlists {
				row := []string{watchlist.ID, watchlist.Name}
				if flagWithAssets {
					row = append(row, strings.Join(watchlist.Symbols(), ","))
				}
				rows = append(rows, row)
			}
			return formatter.Table(headers, rows)
		},
	}

	cmd.Flags().BoolVar(&flagWithAssets, "with-assets", false, "Resolve each watchlist's assets (one extra request per watchlist)")
	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistGetCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one watchlist with its assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			watchlist, err := opts.client().GetWatchlist(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to fetch watchlist: %w", err)
			}

			return printWatchlist(cmd, opts, watchlist)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistCreateCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create NAME [SYMBOL...]",
		Short: "Create a watchlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			watchlist, err := opts.client().CreateWatchlist(ctx, args[0], args[1:])
			if err != nil {
				return fmt.Errorf("failed to create watchlist: %w", err)
			}

			return printWatchlist(cmd, opts, watchlist)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistUpdateCmd(load optionsLoader) *cobra.Command {
	var (
		flagName    string
		flagSymbols []string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Rename a watchlist or replace its symbols",
		Long: `Rename a watchlist and/or replace its symbol list.

--symbols replaces the ENTIRE symbol list; it never merges.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flagName == "" && !cmd.Flags().Changed("symbols") {
				return fmt.Errorf("nothing to update (use --name and/or --symbols)")
			}

			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			var symbols []string
			if cmd.Flags().Changed("symbols") {
				symbols = flagSymbols
				if symbols == nil {
					symbols = []string{}
				}
			}

			watchlist, err := opts.client().UpdateWatchlist(ctx, args[0], flagName, symbols)
			if err != nil {
				return fmt.Errorf("failed to update watchlist: %w", err)
			}

			return printWatchlist(cmd, opts, watchlist)
		},
	}

	cmd.Flags().StringVar(&flagName, "name", "", "New watchlist name")
	cmd.Flags().StringSliceVar(&flagSymbols, "symbols", nil, "Replacement symbol list (comma separated)")
	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistAddCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add ID SYMBOL",
		Short: "Add one symbol to a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			watchlist, err := opts.client().AddSymbolToWatchlist(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add symbol: %w", err)
			}

			return printWatchlist(cmd, opts, watchlist)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistRemoveCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove ID SYMBOL",
		Short: "Remove one symbol from a watchlist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			watchlist, err := opts.client().RemoveSymbolFromWatchlist(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to remove symbol: %w", err)
			}

			return printWatchlist(cmd, opts, watchlist)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistDeleteCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := opts.client().DeleteWatchlist(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete watchlist: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted watchlist %s\n", args[0])
			return nil
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func newWatchlistClearCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all watchlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := opts.client().DeleteAllWatchlists(ctx); err != nil {
				return fmt.Errorf("failed to delete watchlists: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Deleted all watchlists")
			return nil
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func printWatchlist(cmd *cobra.Command, opts clientOptions, watchlist *alpaca.Watchlist) error {
	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.KeyValue([][2]string{
		{"ID", watchlist.ID},
		{"Name", watchlist.Name},
		{"Symbols", strings.Join(watchlist.Symbols(), ",")},
	}, watchlist)
}

func init() {
	rootCmd.AddCommand(newWatchlistCmd(loadClientOptions))
}
