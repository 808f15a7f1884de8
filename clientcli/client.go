package clientcli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dataiesb/pnaes"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs read operations against a PNAES server.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a new Client with the given config and options.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	cfg = cfg.WithDefaults()
	endpoint := strings.TrimSuffix(cfg.Endpoint, "/")

	c := &Client{
		config:     &Config{Endpoint: endpoint},
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// getJSON issues a GET request and decodes the JSON response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.config.Endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return decodeServerError(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	return nil
}

// decodeServerError turns a non-200 response into an error, using the JSON
// error body when the server sent one.
func decodeServerError(path string, resp *http.Response) error {
	var serverErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Error != "" {
		return fmt.Errorf("get %s: %s (%s)", path, serverErr.Message, serverErr.Error)
	}
	return fmt.Errorf("get %s: unexpected status %d", path, resp.StatusCode)
}

// Overview fetches dataset row counts.
func (c *Client) Overview(ctx context.Context) (pnaes.Overview, error) {
	var out pnaes.Overview
	err := c.getJSON(ctx, "/api/v1/overview", nil, &out)
	return out, err
}

// RegionSummaries fetches the by-region aggregate table.
func (c *Client) RegionSummaries(ctx context.Context) ([]pnaes.RegionSummary, error) {
	var out []pnaes.RegionSummary
	err := c.getJSON(ctx, "/api/v1/summary/regions", nil, &out)
	return out, err
}

// StateSummaries fetches the by-state aggregate table. When top > 0 only
// the top states by summed value are returned.
func (c *Client) StateSummaries(ctx context.Context, top int) ([]pnaes.StateSummary, error) {
	var query url.Values
	if top > 0 {
		query = url.Values{"top": []string{strconv.Itoa(top)}}
	}

	var out []pnaes.StateSummary
	err := c.getJSON(ctx, "/api/v1/summary/states", query, &out)
	return out, err
}

// YearSummaries fetches the by-year aggregate table.
func (c *Client) YearSummaries(ctx context.Context) ([]pnaes.YearSummary, error) {
	var out []pnaes.YearSummary
	err := c.getJSON(ctx, "/api/v1/summary/years", nil, &out)
	return out, err
}

// Schema fetches the per-table introspection diagnostics.
func (c *Client) Schema(ctx context.Context) (map[string]pnaes.TableProbe, error) {
	var out map[string]pnaes.TableProbe
	err := c.getJSON(ctx, "/api/v1/schema", nil, &out)
	return out, err
}

// ExportCSV streams the raw ambulatory CSV export to w and returns the
// number of bytes written.
func (c *Client) ExportCSV(ctx context.Context, w io.Writer) (int64, error) {
	u := c.config.Endpoint + "/api/v1/export/ambulatory.csv"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("export csv: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, decodeServerError("/api/v1/export/ambulatory.csv", resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("export csv: %w", err)
	}

	return n, nil
}
