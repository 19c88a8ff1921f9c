// Package fpl is the client for the public Fantasy Premier League JSON API.
package fpl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// ClientConfig carries construction-time settings for Client. Zero values
// fall back to the defaults in NewClient.
type ClientConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Sleep     time.Duration // pause before every network request
	Logger    *slog.Logger
}

type Client struct {
	http      *http.Client
	baseURL   string
	userAgent string
	sleep     time.Duration
	log       *slog.Logger
}

func NewClient(cfg ClientConfig) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fantasy.premierleague.com/api"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "fpl-ai-recommender/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		sleep:     cfg.Sleep,
		log:       cfg.Logger,
	}
}

// get downloads urlPath (like "/bootstrap-static/") and returns the body.
// A fixed pause runs before the request as a courtesy to the upstream.
func (c *Client) get(ctx context.Context, urlPath string) ([]byte, error) {
	if c.sleep > 0 {
		select {
		case <-time.After(c.sleep):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	c.log.Debug("fetching", "path", urlPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+urlPath, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", urlPath, resp.StatusCode, string(body))
	}
	return body, nil
}
