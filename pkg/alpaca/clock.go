package alpaca

import (
	"context"
	"time"
)

// Clock is the market clock: whether the market is open right now, and
// the next open and close timestamps.
type Clock struct {
	Timestamp time.Time `json:"timestamp"`
	IsOpen    bool      `json:"is_open"`
	NextOpen  time.Time `json:"next_open"`
	NextClose time.Time `json:"next_close"`
}

// GetClock retrieves the current market clock.
func (c *Client) GetClock(ctx context.Context) (*Clock, error) {
	resp, err := c.get(ctx, "/v2/clock", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var clock Clock
	if err := decodeJSON(resp, &clock); err != nil {
		return nil, err
	}

	return &clock, nil
}
