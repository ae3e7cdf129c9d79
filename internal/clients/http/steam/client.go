// Package steam wraps outbound calls to the Steam Web API and storefront
// endpoints behind a small typed client.
package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error taxonomy for upstream calls. Callers decide whether to degrade or
// surface these; the client itself never retries.
var (
	// ErrUpstreamUnavailable covers network failures and non-2xx statuses.
	ErrUpstreamUnavailable = errors.New("steam upstream unavailable")
	// ErrUpstreamMalformed covers bodies that do not match the expected shape.
	ErrUpstreamMalformed = errors.New("steam upstream response malformed")
)

const (
	defaultAPIBaseURL   = "https://api.steampowered.com"
	defaultStoreBaseURL = "https://store.steampowered.com"
	defaultTimeout      = 15 * time.Second
)

// The storefront blocks requests without browser-looking headers.
var storefrontHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Accept":          "application/json,text/html;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://store.steampowered.com/",
}

// Client issues requests against the Steam catalog and detail APIs.
type Client struct {
	httpClient   *http.Client
	apiKey       string
	apiBaseURL   string
	storeBaseURL string
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithAPIBaseURL overrides the Web API base URL, mainly for tests.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.apiBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithStoreBaseURL overrides the storefront base URL, mainly for tests.
func WithStoreBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.storeBaseURL = strings.TrimRight(u, "/")
		}
	}
}

// NewClient instantiates the Steam client with sane defaults.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		apiKey:       strings.TrimSpace(apiKey),
		apiBaseURL:   defaultAPIBaseURL,
		storeBaseURL: defaultStoreBaseURL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// ListApps fetches one catalog page starting after lastAppID.
func (c *Client) ListApps(ctx context.Context, lastAppID int64, maxResults int) (AppPage, error) {
	query := url.Values{}
	query.Set("key", c.apiKey)
	query.Set("max_results", strconv.Itoa(maxResults))
	query.Set("last_appid", strconv.FormatInt(lastAppID, 10))
	query.Set("include_games", "1")
	body, err := c.get(ctx, c.apiBaseURL+"/IStoreService/GetAppList/v1/?"+query.Encode(), false)
	if err != nil {
		return AppPage{}, err
	}
	var envelope appListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return AppPage{}, fmt.Errorf("%w: decode app list: %v", ErrUpstreamMalformed, err)
	}
	if envelope.Response == nil {
		return AppPage{}, fmt.Errorf("%w: app list response field missing", ErrUpstreamMalformed)
	}
	return AppPage{
		Apps:            envelope.Response.Apps,
		HaveMoreResults: envelope.Response.HaveMoreResults,
		LastAppID:       envelope.Response.LastAppID,
	}, nil
}

// AppDetails fetches and normalizes the storefront detail record for one
// app. It returns (nil, nil) when the upstream has no record for the id;
// callers treat that as a normal outcome.
func (c *Client) AppDetails(ctx context.Context, appID int64) (*AppDetail, error) {
	query := url.Values{}
	query.Set("appids", strconv.FormatInt(appID, 10))
	query.Set("l", "en")
	body, err := c.get(ctx, c.storeBaseURL+"/api/appdetails?"+query.Encode(), true)
	if err != nil {
		return nil, err
	}
	envelope, err := decodeDetailEnvelope(body, appID)
	if err != nil {
		return nil, fmt.Errorf("%w: decode app details: %v", ErrUpstreamMalformed, err)
	}
	if envelope == nil || !envelope.Success || envelope.Data == nil {
		return nil, nil
	}
	return envelope.Data.normalize(appID), nil
}

// FeaturedCategories proxies the storefront featured-categories payload.
func (c *Client) FeaturedCategories(ctx context.Context) (json.RawMessage, error) {
	return c.getRaw(ctx, c.storeBaseURL+"/api/featuredcategories", true)
}

// Search proxies the storefront search for the given term.
func (c *Client) Search(ctx context.Context, term string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("term", term)
	query.Set("l", "english")
	query.Set("cc", "us")
	return c.getRaw(ctx, c.storeBaseURL+"/api/storesearch/?"+query.Encode(), true)
}

// UpToDateCheck proxies the build-version freshness check for an app.
func (c *Client) UpToDateCheck(ctx context.Context, appID int64, version string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("appid", strconv.FormatInt(appID, 10))
	query.Set("version", version)
	query.Set("key", c.apiKey)
	return c.getRaw(ctx, c.apiBaseURL+"/ISteamApps/UpToDateCheck/v1/?"+query.Encode(), false)
}

func (c *Client) getRaw(ctx context.Context, rawURL string, storefront bool) (json.RawMessage, error) {
	body, err := c.get(ctx, rawURL, storefront)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrUpstreamMalformed)
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, rawURL string, storefront bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build steam request: %w", err)
	}
	if storefront {
		for k, v := range storefrontHeaders {
			req.Header.Set(k, v)
		}
	} else {
		req.Header.Set("Accept", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: status %s", ErrUpstreamUnavailable, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstreamUnavailable, err)
	}
	return body, nil
}
