// Package alpaca provides a Go client for the Alpaca trading REST API.
//
// The client holds API key pairs for the live and paper trading
// environments and exposes one method per REST operation. Every call is a
// single HTTP round trip: there are no retries, no caching, and no rate
// limiting. Switching environments and replacing credentials are
// configuration-time operations; they are not synchronized with in-flight
// requests.
package alpaca

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Default endpoints for the two trading environments.
const (
	LiveBaseURL  = "https://api.alpaca.markets"
	PaperBaseURL = "https://paper-api.alpaca.markets"
)

// Authentication headers mandated by the Alpaca API.
const (
	headerKeyID     = "APCA-API-KEY-ID"
	headerSecretKey = "APCA-API-SECRET-KEY"
)

// ErrNoCredentials is returned when a request is attempted while the
// selected environment has no credentials. The client never sends an
// unauthenticated request.
var ErrNoCredentials = errors.New("alpaca: no credentials for the selected environment")

// Options configures a Client. All fields are optional, but at least one
// credential pair must be supplied before any request can succeed.
type Options struct {
	LiveKeyID   string
	LiveSecret  string
	PaperKeyID  string
	PaperSecret string

	// LiveBaseURL and PaperBaseURL override the default endpoints.
	LiveBaseURL  string
	PaperBaseURL string

	// HTTPClient overrides the default transport (30s timeout).
	HTTPClient *http.Client

	// Logger receives debug logs for each request. Discarded when nil.
	Logger logrus.FieldLogger
}

// Client handles HTTP requests to the Alpaca API.
//
// The zero value is not usable; construct with New. The client starts in
// the live environment unless only paper credentials were supplied.
type Client struct {
	LiveBaseURL  string
	PaperBaseURL string
	HTTPClient   *http.Client

	live  *Credentials
	paper *Credentials

	paperMode bool

	logger logrus.FieldLogger
}

// New creates a Client from the given options.
func New(opts Options) *Client {
	c := &Client{
		LiveBaseURL:  LiveBaseURL,
		PaperBaseURL: PaperBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: opts.Logger,
	}

	if opts.LiveBaseURL != "" {
		c.LiveBaseURL = strings.TrimSuffix(opts.LiveBaseURL, "/")
	}
	if opts.PaperBaseURL != "" {
		c.PaperBaseURL = strings.TrimSuffix(opts.PaperBaseURL, "/")
	}
	if opts.HTTPClient != nil {
		c.HTTPClient = opts.HTTPClient
	}
	if c.logger == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		c.logger = silent
	}

	if opts.LiveKeyID != "" || opts.LiveSecret != "" {
		c.live = &Credentials{KeyID: opts.LiveKeyID, Secret: opts.LiveSecret}
	}
	if opts.PaperKeyID != "" || opts.PaperSecret != "" {
		c.paper = &Credentials{KeyID: opts.PaperKeyID, Secret: opts.PaperSecret}
	}

	// Live is the default unless only paper credentials were supplied.
	c.paperMode = c.live == nil && c.paper != nil

	return c
}

// EnableLiveTrading points the client at the live environment.
func (c *Client) EnableLiveTrading() { c.paperMode = false }

// EnablePaperTrading points the client at the paper environment.
func (c *Client) EnablePaperTrading() { c.paperMode = true }

// PaperTrading reports whether the paper environment is selected.
func (c *Client) PaperTrading() bool { return c.paperMode }

// UpdateCredentials replaces the credential pair for one environment.
// The other environment's credentials are untouched.
func (c *Client) UpdateCredentials(keyID, secret string, live bool) {
	creds := &Credentials{KeyID: keyID, Secret: secret}
	if live {
		c.live = creds
	} else {
		c.paper = creds
	}
}

// baseURL returns the endpoint for the selected environment.
func (c *Client) baseURL() string {
	if c.paperMode {
		return c.PaperBaseURL
	}
	return c.LiveBaseURL
}

// activeCredentials returns the credentials for the selected environment,
// or ErrNoCredentials if that slot is empty.
func (c *Client) activeCredentials() (*Credentials, error) {
	creds := c.live
	if c.paperMode {
		creds = c.paper
	}
	if creds == nil {
		return nil, ErrNoCredentials
	}
	return creds, nil
}

// get performs a GET request to the specified path with optional query
// parameters.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// post performs a POST request with the given body encoded as JSON.
func (c *Client) post(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// put performs a PUT request with the given body encoded as JSON.
func (c *Client) put(ctx context.Context, path string, body any) (*http.Response, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// delete performs a DELETE request to the specified path.
func (c *Client) delete(ctx context.Context, path string) (*http.Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs a single HTTP request with auth header injection.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	creds, err := c.activeCredentials()
	if err != nil {
		return nil, err
	}

	u := c.baseURL() + path
	if len(query) > 0 {
		u = u + "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headerKeyID, creds.KeyID)
	req.Header.Set(headerSecretKey, creds.Secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.WithFields(logrus.Fields{
		"method": method,
		"path":   path,
		"status": resp.StatusCode,
	}).Debug("alpaca api request")

	return resp, nil
}
