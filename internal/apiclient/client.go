// Package apiclient is a caching consumer of the public read API.
//
// The client is built for UI consumption: Channels never returns an error.
// Fetches retry with a fixed delay, a failure serves the previous snapshot if
// one exists, and a total failure serves an empty list.
package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	cacheTTL       = 5 * time.Minute
	fetchAttempts  = 3
	retryDelay     = time.Second
	requestTimeout = 10 * time.Second
)

// Channel is one stream as served by the read API.
type Channel struct {
	ID           int    `json:"id"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Icon         string `json:"icon"`
	Sort         int    `json:"sort"`
}

// envelope mirrors the API response wrapper.
type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client fetches and caches the channel list.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.Mutex
	channels  []Channel
	fetchedAt time.Time
}

// New creates a client for the API at baseURL, e.g. "https://example.com".
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// Channels returns the channel list, serving the cached snapshot while it is
// fresh. force bypasses the TTL. On fetch failure the stale snapshot is
// returned if one exists, otherwise an empty list; Channels never errors.
func (c *Client) Channels(ctx context.Context, force bool) []Channel {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !force && c.channels != nil && time.Since(c.fetchedAt) < cacheTTL {
		return c.channels
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to refresh channels", "err", err, "stale", c.channels != nil)
		if c.channels != nil {
			return c.channels
		}
		return []Channel{}
	}
	c.channels = fetched
	c.fetchedAt = time.Now()
	return c.channels
}

// ChannelsByCategory returns the cached channels filtered by category ID.
func (c *Client) ChannelsByCategory(ctx context.Context, categoryID int) []Channel {
	matched := []Channel{}
	for _, ch := range c.Channels(ctx, false) {
		if ch.CategoryID == categoryID {
			matched = append(matched, ch)
		}
	}
	return matched
}

// Categories returns the distinct category names in display order.
func (c *Client) Categories(ctx context.Context) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, ch := range c.Channels(ctx, false) {
		if !seen[ch.CategoryName] {
			seen[ch.CategoryName] = true
			names = append(names, ch.CategoryName)
		}
	}
	return names
}

// Search returns channels whose name contains the query, case-insensitive.
func (c *Client) Search(ctx context.Context, query string) []Channel {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := []Channel{}
	if query == "" {
		return matched
	}
	for _, ch := range c.Channels(ctx, false) {
		if strings.Contains(strings.ToLower(ch.Name), query) {
			matched = append(matched, ch)
		}
	}
	return matched
}

// ChannelByID returns the cached channel with the given ID, or false.
func (c *Client) ChannelByID(ctx context.Context, id int) (Channel, bool) {
	for _, ch := range c.Channels(ctx, false) {
		if ch.ID == id {
			return ch, true
		}
	}
	return Channel{}, false
}

// ClearCache drops the cached snapshot so the next call fetches.
func (c *Client) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = nil
	c.fetchedAt = time.Time{}
}

// Refresh forces a fetch and returns the resulting list.
func (c *Client) Refresh(ctx context.Context) []Channel {
	return c.Channels(ctx, true)
}

// fetch retrieves the full channel list, retrying transient failures with a
// fixed delay between attempts.
func (c *Client) fetch(ctx context.Context) ([]Channel, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
		channels, err := c.fetchOnce(ctx)
		if err == nil {
			return channels, nil
		}
		lastErr = err
		slog.DebugContext(ctx, "Channel fetch attempt failed", "attempt", attempt, "err", err)
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", fetchAttempts, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context) ([]Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/streams", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("invalid response body: %w", err)
	}
	if env.Code != http.StatusOK {
		return nil, fmt.Errorf("api error %d: %s", env.Code, env.Message)
	}
	var channels []Channel
	if err := json.Unmarshal(env.Data, &channels); err != nil {
		return nil, fmt.Errorf("invalid channel payload: %w", err)
	}
	if channels == nil {
		channels = []Channel{}
	}
	return channels, nil
}
