package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Public endpoints used when a Client does not override them.
const (
	DefaultBaseURL   = "https://huggingface.co"
	DefaultViewerURL = "https://datasets-server.huggingface.co"
)

// maxPageSize is the viewer's hard cap on the /rows length parameter.
const maxPageSize = 100

// ErrSplitNotFound reports that the dataset exists and lists splits, but not
// the one that was requested. Callers use it to decide whether falling back
// to the dataset's default split makes sense.
var ErrSplitNotFound = errors.New("split not found")

// Record is one dataset row as decoded from the viewer's JSON payload. Its
// shape varies per dataset; downstream detection is heuristic on purpose.
type Record map[string]any

// Identity describes the account behind an access token.
type Identity struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Split names one partition of a dataset under a config.
type Split struct {
	Dataset string `json:"dataset"`
	Config  string `json:"config"`
	Split   string `json:"split"`
}

// Feature describes one column of a split as reported by the viewer. Type is
// kept raw because the viewer's type vocabulary is open-ended.
type Feature struct {
	Name string          `json:"name"`
	Type json.RawMessage `json:"type"`
}

// Client talks to the Hugging Face hub API and the dataset viewer API. The
// zero value works against the public services without authentication; set
// Token for gated datasets and for WhoAmI.
type Client struct {
	// BaseURL is the hub API root. Empty means DefaultBaseURL.
	BaseURL string
	// ViewerURL is the dataset viewer root. Empty means DefaultViewerURL.
	ViewerURL string
	// Token is attached as a bearer credential to every request when set.
	Token string
	// HTTPClient performs requests. Nil means a client with a sane timeout.
	HTTPClient *http.Client
	// UserAgent is sent with every request when non-empty.
	UserAgent string
	// PageSize bounds how many rows one /rows call asks for. Zero or
	// anything above the viewer cap means the cap (100).
	PageSize int
}

// WhoAmI validates the configured token against the hub and returns the
// account it belongs to.
func (c *Client) WhoAmI(ctx context.Context) (Identity, error) {
	var id Identity
	if err := c.getJSON(ctx, c.baseURL()+"/api/whoami-v2", &id); err != nil {
		return Identity{}, fmt.Errorf("whoami: %w", err)
	}
	return id, nil
}

// Splits lists every config/split pair the viewer knows for a dataset.
func (c *Client) Splits(ctx context.Context, dataset string) ([]Split, error) {
	u := c.viewerURL() + "/splits?dataset=" + url.QueryEscape(dataset)
	var sr splitsResponse
	if err := c.getJSON(ctx, u, &sr); err != nil {
		return nil, fmt.Errorf("list splits: %w", err)
	}
	return sr.Splits, nil
}

type splitsResponse struct {
	Splits []Split `json:"splits"`
}

// OpenRows resolves the requested split and returns an iterator over its
// rows. An empty split selects the first one the viewer lists, which is the
// dataset's default. A dataset that lists splits but not the requested one
// yields ErrSplitNotFound.
func (c *Client) OpenRows(ctx context.Context, dataset, split string) (*RowIterator, error) {
	splits, err := c.Splits(ctx, dataset)
	if err != nil {
		return nil, err
	}
	if len(splits) == 0 {
		return nil, fmt.Errorf("dataset %q lists no splits", dataset)
	}
	chosen := splits[0]
	if split != "" {
		found := false
		for _, s := range splits {
			if s.Split == split {
				chosen = s
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("dataset %q: %w: %q", dataset, ErrSplitNotFound, split)
		}
	}
	return &RowIterator{
		client:  c,
		dataset: dataset,
		config:  chosen.Config,
		split:   chosen.Split,
	}, nil
}

func (c *Client) baseURL() string {
	if strings.TrimSpace(c.BaseURL) != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return DefaultBaseURL
}

func (c *Client) viewerURL() string {
	if strings.TrimSpace(c.ViewerURL) != "" {
		return strings.TrimRight(c.ViewerURL, "/")
	}
	return DefaultViewerURL
}

func (c *Client) pageSize() int {
	if c.PageSize > 0 && c.PageSize < maxPageSize {
		return c.PageSize
	}
	return maxPageSize
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *Client) decorate(req *http.Request) {
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// getJSON issues an authenticated GET and decodes the 2xx response into out.
func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.decorate(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// apiError surfaces the viewer's {"error": "..."} message when one is
// present; otherwise just the status code.
func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
	var e struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &e); err == nil && strings.TrimSpace(e.Error) != "" {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(e.Error))
	}
	return fmt.Errorf("unexpected status: %d", resp.StatusCode)
}

// fetchAsset downloads the raw bytes behind one asset reference, typically
// an image the viewer stored on its CDN.
func (c *Client) fetchAsset(ctx context.Context, src string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	c.decorate(req)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return b, nil
}
