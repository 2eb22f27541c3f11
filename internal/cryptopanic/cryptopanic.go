// Package cryptopanic is a minimal client for the CryptoPanic posts API.
package cryptopanic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cryptonews/internal/logger"
	"cryptonews/internal/retry"
)

// Post is one aggregator item as returned by the API.
type Post struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
}

type postsResponse struct {
	Results []Post `json:"results"`
}

type Client struct {
	baseURL   string
	apiKey    string
	userAgent string
	http      *http.Client
	retryCfg  retry.Config
}

func NewClient(baseURL, apiKey, userAgent string, timeout time.Duration, retryCfg retry.Config) *Client {
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		retryCfg:  retryCfg,
	}
}

// FetchPosts retrieves the public post list. A 429 response is a recoverable
// "skip this source for this run" condition: it yields no posts and no error.
func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	url := fmt.Sprintf("%s/api/v1/posts/?auth_token=%s&public=true", c.baseURL, c.apiKey)

	var posts []Post
	err := retry.WithRetry(ctx, c.retryCfg, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			logger.Warn("cryptopanic rate limit exceeded, skipping source for this run")
			posts = nil
			return nil
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		var body postsResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		posts = body.Results
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("cryptopanic posts retrieved", "count", len(posts))
	return posts, nil
}

// ParsePublished decodes the API timestamp (RFC 3339, trailing Z accepted).
// Any failure yields nil: an unknown publish time never breaks a record.
func ParsePublished(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil
	}
	return &t
}
