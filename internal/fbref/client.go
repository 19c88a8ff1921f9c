// Package fbref scrapes the Premier League standard-stats table from
// fbref.com and joins it to the FPL player master by name.
package fbref

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// StandardStatsURL is the season-to-date standard stats page.
const StandardStatsURL = "https://fbref.com/en/comps/9/stats/Premier-League-Stats"

// PoliteClient is a rate-limited HTTP client. fbref bans aggressive
// scrapers, so every request waits on the limiter.
type PoliteClient struct {
	http    *http.Client
	limiter *rate.Limiter
	maxBody int64
	ua      string
}

func NewPoliteClient(rps float64, burst int, timeout time.Duration, maxBody int64, userAgent string) *PoliteClient {
	if burst < 1 {
		burst = 1
	}
	return &PoliteClient{
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		maxBody: maxBody,
		ua:      userAgent,
	}
}

// Get fetches url, honoring the rate limit, and returns body and status.
func (c *PoliteClient) Get(ctx context.Context, url string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read %s: %w", url, err)
	}
	return body, resp.StatusCode, nil
}
