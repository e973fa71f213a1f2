package alpaca

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// Watchlist is a named, ordered collection of assets owned by the account.
// The listing endpoint returns watchlists without their assets; fetching a
// single watchlist resolves them.
type Watchlist struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Assets    []Asset   `json:"assets"`
}

// Symbols returns the watchlist's asset symbols in watchlist order.
func (w *Watchlist) Symbols() []string {
	symbols := make([]string, 0, len(w.Assets))
	for _, asset := range w.Assets {
		symbols = append(symbols, asset.Symbol)
	}
	return symbols
}

// createWatchlistRequest is the POST body for watchlist creation.
type createWatchlistRequest struct {
	Name    string   `json:"name"`
	Symbols []string `json:"symbols,omitempty"`
}

// updateWatchlistRequest is the PUT body for watchlist updates. Symbols is
// a pointer so a name-only rename omits the field entirely.
type updateWatchlistRequest struct {
	Name    string    `json:"name,omitempty"`
	Symbols *[]string `json:"symbols,omitempty"`
}

// addSymbolRequest is the POST body for adding one symbol.
type addSymbolRequest struct {
	Symbol string `json:"symbol"`
}

// GetWatchlists retrieves all watchlists for the account. When withAssets
// is true, each watchlist's assets are resolved with one follow-up request
// per watchlist, sequentially and in list order; if any sub-request fails,
// the whole call fails.
func (c *Client) GetWatchlists(ctx context.Context, withAssets bool) ([]Watchlist, error) {
	resp, err := c.get(ctx, "/v2/watchlists", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlists []Watchlist
	if err := decodeJSON(resp, &watchlists); err != nil {
		return nil, err
	}

	if !withAssets {
		return watchlists, nil
	}

	for i := range watchlists {
		full, err := c.GetWatchlist(ctx, watchlists[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve watchlist %s: %w", watchlists[i].ID, err)
		}
		watchlists[i] = *full
	}

	return watchlists, nil
}

// GetWatchlist retrieves a single watchlist, including its assets.
func (c *Client) GetWatchlist(ctx context.Context, id string) (*Watchlist, error) {
	if id == "" {
		return nil, fmt.Errorf("watchlist id is required")
	}

	resp, err := c.get(ctx, "/v2/watchlists/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlist Watchlist
	if err := decodeJSON(resp, &watchlist); err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// CreateWatchlist creates a watchlist with the given name and optional
// initial symbols. Symbol order is preserved.
func (c *Client) CreateWatchlist(ctx context.Context, name string, symbols []string) (*Watchlist, error) {
	if name == "" {
		return nil, fmt.Errorf("watchlist name is required")
	}

	resp, err := c.post(ctx, "/v2/watchlists", createWatchlistRequest{
		Name:    name,
		Symbols: symbols,
	})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlist Watchlist
	if err := decodeJSON(resp, &watchlist); err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// UpdateWatchlist renames a watchlist and/or replaces its symbols. A nil
// symbols slice leaves the existing symbols alone; a non-nil slice
// replaces the entire list, never merges.
func (c *Client) UpdateWatchlist(ctx context.Context, id, name string, symbols []string) (*Watchlist, error) {
	if id == "" {
		return nil, fmt.Errorf("watchlist id is required")
	}

	req := updateWatchlistRequest{Name: name}
	if symbols != nil {
		req.Symbols = &symbols
	}

	resp, err := c.put(ctx, "/v2/watchlists/"+url.PathEscape(id), req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlist Watchlist
	if err := decodeJSON(resp, &watchlist); err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// AddSymbolToWatchlist appends one symbol to a watchlist.
func (c *Client) AddSymbolToWatchlist(ctx context.Context, id, symbol string) (*Watchlist, error) {
	if id == "" {
		return nil, fmt.Errorf("watchlist id is required")
	}
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	resp, err := c.post(ctx, "/v2/watchlists/"+url.PathEscape(id), addSymbolRequest{Symbol: symbol})
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlist Watchlist
	if err := decodeJSON(resp, &watchlist); err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// RemoveSymbolFromWatchlist removes one symbol from a watchlist and
// returns the updated watchlist.
func (c *Client) RemoveSymbolFromWatchlist(ctx context.Context, id, symbol string) (*Watchlist, error) {
	if id == "" {
		return nil, fmt.Errorf("watchlist id is required")
	}
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	resp, err := c.delete(ctx, "/v2/watchlists/"+url.PathEscape(id)+"/"+url.PathEscape(symbol))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var watchlist Watchlist
	if err := decodeJSON(resp, &watchlist); err != nil {
		return nil, err
	}

	return &watchlist, nil
}

// DeleteWatchlist deletes a watchlist by id.
func (c *Client) DeleteWatchlist(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("watchlist id is required")
	}

	resp, err := c.delete(ctx, "/v2/watchlists/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return checkResponse(resp)
}

// DeleteAllWatchlists deletes every watchlist for the account, one
// request per watchlist in list order. The first failure aborts the loop.
func (c *Client) DeleteAllWatchlists(ctx context.Context) error {
	watchlists, err := c.GetWatchlists(ctx, false)
	if err != nil {
		return err
	}

	for _, watchlist := range watchlists {
		if err := c.DeleteWatchlist(ctx, watchlist.ID); err != nil {
			return fmt.Errorf("failed to delete watchlist %s: %w", watchlist.ID, err)
		}
	}

	return nil
}
