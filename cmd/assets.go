package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/telfer/alp/internal/output"
	"github.com/telfer/alp/pkg/alpaca"
)

// newAssetsCmd creates the assets listing command.
func newAssetsCmd(load optionsLoader) *cobra.Command {
	var (
		flagStatus   string
		flagClass    string
		flagExchange string
	)

	cmd := &cobra.Command{
		Use:   "assets",
		Short: "List tradable assets",
		Long: `List assets known to Alpaca, optionally filtered.

Examples:
  alp assets --status active
  alp assets --exchange NYSE --class us_equity`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}
			return runAssets(cmd, opts, alpaca.AssetFilter{
				Status:   flagStatus,
				Class:    flagClass,
				Exchange: flagExchange,
			})
		},
	}

	cmd.Flags().StringVar(&flagStatus, "status", "", "Filter by status (active, inactive)")
	cmd.Flags().StringVar(&flagClass, "class", "", "Filter by asset class (e.g. us_equity)")
	cmd.Flags().StringVar(&flagExchange, "exchange", "", "Filter by exchange (e.g. NYSE, NASDAQ)")
	cmd.SilenceUsage = true

	return cmd
}

func runAssets(cmd *cobra.Command, opts clientOptions, filter alpaca.AssetFilter) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	assets, err := opts.client().GetAssets(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to fetch assets: %w", err)
	}

	if len(assets) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No assets found")
		return nil
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	headers := []string{"Symbol", "Exchange", "Class", "Status", "Tradable"}
	rows := make([][]string, 0, len(assets))
	for _, asset := range assets {
		rows = append(rows, []string{
			asset.Symbol,
			asset.Exchange,
			asset.Class,
			asset.Status,
			fmt.Sprintf("%t", asset.Tradable),
		})
	}

	return formatter.Table(headers, rows)
}

// newAssetCmd creates the single-asset lookup command.
func newAssetCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset SYMBOL",
		Short: "Show one asset by symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}
			return runAsset(cmd, opts, args[0])
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runAsset(cmd *cobra.Command, opts clientOptions, symbol string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	asset, err := opts.client().GetAsset(ctx, symbol)
	if err != nil {
		if apiErr, ok := err.(*alpaca.APIError); ok && apiErr.IsNotFound() {
			return fmt.Errorf("asset %q not found", symbol)
		}
		return fmt.Errorf("failed to fetch asset: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.KeyValue([][2]string{
		{"Symbol", asset.Symbol},
		{"Exchange", asset.Exchange},
		{"Class", asset.Class},
		{"Status", asset.Status},
		{"Tradable", fmt.Sprintf("%t", asset.Tradable)},
		{"Marginable", fmt.Sprintf("%t", asset.Marginable)},
		{"Shortable", fmt.Sprintf("%t", asset.Shortable)},
		{"Easy To Borrow", fmt.Sprintf("%t", asset.EasyToBorrow)},
	}, asset)
}

func init() {
	rootCmd.AddCommand(newAssetsCmd(loadClientOptions))
	rootCmd.AddCommand(newAssetCmd(loadClientOptions))
}
