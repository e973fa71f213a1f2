package alpaca

import (
	"context"
	"fmt"
	"net/url"
)

// Asset is a tradable instrument's static metadata.
type Asset struct {
	ID           string `json:"id"`
	Class        string `json:"class"`
	Exchange     string `json:"exchange"`
	Symbol       string `json:"symbol"`
	Status       string `json:"status"`
	Tradable     bool   `json:"tradable"`
	Marginable   bool   `json:"marginable"`
	Shortable    bool   `json:"shortable"`
	EasyToBorrow bool   `json:"easy_to_borrow"`
}

// AssetFilter narrows a GetAssets listing. Empty fields are omitted from
// the query.
type AssetFilter struct {
	Status   string
	Class    string
	Exchange string
}

// GetAssets retrieves the assets matching the filter.
func (c *Client) GetAssets(ctx context.Context, filter AssetFilter) ([]Asset, error) {
	query := url.Values{}
	if filter.Status != "" {
		query.Set("status", filter.Status)
	}
	if filter.Class != "" {
		query.Set("asset_class", filter.Class)
	}
	if filter.Exchange != "" {
		query.Set("exchange", filter.Exchange)
	}

	resp, err := c.get(ctx, "/v2/assets", query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var assets []Asset
	if err := decodeJSON(resp, &assets); err != nil {
		return nil, err
	}

	return assets, nil
}

// GetAsset retrieves a single asset by symbol.
func (c *Client) GetAsset(ctx context.Context, symbol string) (*Asset, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	resp, err := c.get(ctx, "/v2/assets/"+url.PathEscape(symbol), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var asset Asset
	if err := decodeJSON(resp, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}
