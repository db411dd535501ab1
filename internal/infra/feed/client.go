package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vietddude/loresmith/internal/core/domain"
)

// Config holds feed API settings.
type Config struct {
	URL         string        `yaml:"url"`
	AccessToken string        `yaml:"access_token"`
	Visibility  string        `yaml:"visibility"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Client posts rendered books as statuses to a Mastodon-compatible
// feed.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a feed client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: &http.Client{Timeout: timeout}}
}

// Publish posts the whole book as one status, paragraphs separated by
// blank lines. Network failures, rate limits and server errors are
// retryable; other client errors are not.
func (c *Client) Publish(ctx context.Context, book domain.Book) error {
	payload, err := json.Marshal(map[string]string{
		"status":     strings.Join(book, "\n\n"),
		"visibility": c.visibility(),
	})
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL+"/api/v1/statuses", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Retryable(fmt.Errorf("post status: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	err = fmt.Errorf("post status: %s: %s", resp.Status, strings.TrimSpace(string(body)))
	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return domain.Retryable(err)
	}
	return err
}

func (c *Client) visibility() string {
	if c.cfg.Visibility == "" {
		return "public"
	}
	return c.cfg.Visibility
}
