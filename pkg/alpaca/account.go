package alpaca

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Account holds the trading account's state and balances. Monetary fields
// arrive from the API as quoted numbers and decode into decimals.
type Account struct {
	ID                string          `json:"id"`
	AccountNumber     string          `json:"account_number"`
	Status            string          `json:"status"`
	Currency          string          `json:"currency"`
	Cash              decimal.Decimal `json:"cash"`
	PortfolioValue    decimal.Decimal `json:"portfolio_value"`
	BuyingPower       decimal.Decimal `json:"buying_power"`
	Equity            decimal.Decimal `json:"equity"`
	LastEquity        decimal.Decimal `json:"last_equity"`
	LongMarketValue   decimal.Decimal `json:"long_market_value"`
	ShortMarketValue  decimal.Decimal `json:"short_market_value"`
	InitialMargin     decimal.Decimal `json:"initial_margin"`
	MaintenanceMargin decimal.Decimal `json:"maintenance_margin"`
	Multiplier        string          `json:"multiplier"`
	DaytradeCount     int             `json:"daytrade_count"`
	PatternDayTrader  bool            `json:"pattern_day_trader"`
	ShortingEnabled   bool            `json:"shorting_enabled"`
	TradingBlocked    bool            `json:"trading_blocked"`
	TransfersBlocked  bool            `json:"transfers_blocked"`
	AccountBlocked    bool            `json:"account_blocked"`
	CreatedAt         time.Time       `json:"created_at"`
}

// GetAccount retrieves the account for the selected environment.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	resp, err := c.get(ctx, "/v2/account", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var account Account
	if err := decodeJSON(resp, &account); err != nil {
		return nil, err
	}

	return &account, nil
}
