package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/telfer/alp/internal/output"
)

// newAccountCmd creates the account command. The loader supplies client
// options at run time, which lets tests inject a stub server.
func newAccountCmd(load optionsLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "View account status and balances",
		Long: `View the trading account for the selected environment.

Examples:
  alp account           # account for the configured environment
  alp account --paper   # paper account`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := load()
			if err != nil {
				return err
			}
			return runAccount(cmd, opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runAccount(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	account, err := opts.client().GetAccount(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch account: %w", err)
	}

	env := "live"
	if opts.paper {
		env = "paper"
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.KeyValue([][2]string{
		{"Environment", env},
		{"Account", account.AccountNumber},
		{"Status", account.Status},
		{"Currency", account.Currency},
		{"Cash", account.Cash.String()},
		{"Portfolio Value", account.PortfolioValue.String()},
		{"Buying Power", account.BuyingPower.String()},
		{"Equity", account.Equity.String()},
		{"Daytrade Count", fmt.Sprintf("%d", account.DaytradeCount)},
		{"Pattern Day Trader", fmt.Sprintf("%t", account.PatternDayTrader)},
	}, account)
}

func init() {
	rootCmd.AddCommand(newAccountCmd(loadClientOptions))
}
