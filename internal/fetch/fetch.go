package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/example/contestwatch/internal/contest"
)

// Fetcher retrieves the current remote set of upcoming contests. An
// implementation must signal unambiguous success or failure; it never
// returns an empty result as a stand-in for a failed fetch.
type Fetcher interface {
	FetchUpcoming(ctx context.Context) ([]contest.Contest, error)
}

// Config holds remote API client settings.
type Config struct {
	BaseURL string        `toml:"base_url"`
	Timeout time.Duration `toml:"timeout"`
}

// DefaultConfig returns the Codeforces public API defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://codeforces.com/api",
		Timeout: 30 * time.Second,
	}
}

// APIError is a response that arrived intact but carried a failed status.
type APIError struct {
	Status  string
	Comment string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("remote API status %s: %s", e.Status, e.Comment)
}

// contestListResponse mirrors the contest.list envelope.
type contestListResponse struct {
	Status  string            `json:"status"`
	Comment string            `json:"comment"`
	Result  []contest.Contest `json:"result"`
}

// Client fetches the contest list from a Codeforces-style API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates an API client with the given configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// FetchUpcoming retrieves the full contest list and filters it to
// contests that have not started yet, preserving the API's ordering.
func (c *Client) FetchUpcoming(ctx context.Context) ([]contest.Contest, error) {
	url := c.baseURL + "/contest.list?gym=false"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build contest list request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve contest list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contest list request returned HTTP %d", resp.StatusCode)
	}

	var parsed contestListResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to parse contest list response: %w", err)
	}

	if parsed.Status != "OK" {
		comment := parsed.Comment
		if comment == "" {
			comment = "no comment"
		}
		return nil, &APIError{Status: parsed.Status, Comment: comment}
	}

	upcoming := make([]contest.Contest, 0, len(parsed.Result))
	for _, entry := range parsed.Result {
		if entry.Upcoming() {
			upcoming = append(upcoming, entry)
		}
	}

	return upcoming, nil
}
