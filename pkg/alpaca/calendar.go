package alpaca

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// DateLayout is the date format the calendar endpoint speaks.
const DateLayout = "2006-01-02"

// CalendarDay is one trading day's session times. Open and Close are
// clock times in the exchange's local zone, e.g. "09:30" and "16:00".
type CalendarDay struct {
	Date  string `json:"date"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

// GetCalendar retrieves the trading calendar entries between start and
// end, inclusive. A zero time leaves that bound unset and the API applies
// its own default.
func (c *Client) GetCalendar(ctx context.Context, start, end time.Time) ([]CalendarDay, error) {
	query := url.Values{}
	if !start.IsZero() {
		query.Set("start", start.Format(DateLayout))
	}
	if !end.IsZero() {
		query.Set("end", end.Format(DateLayout))
	}

	resp, err := c.get(ctx, "/v2/calendar", query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var days []CalendarDay
	if err := decodeJSON(resp, &days); err != nil {
		return nil, err
	}

	return days, nil
}

// GetCalendarDay retrieves the calendar entry for a single date. The API
// returns nothing for non-trading days, which surfaces as an error here.
func (c *Client) GetCalendarDay(ctx context.Context, date time.Time) (*CalendarDay, error) {
	days, err := c.GetCalendar(ctx, date, date)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no calendar entry for %s", date.Format(DateLayout))
	}
	return &days[0], nil
}
