package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

var (
	// ErrNotConfigured is returned when no generation backend is configured.
	ErrNotConfigured = errors.New("ai generation is not configured")
)

// Client represents the copy-generation HTTP client. The backend is an opaque
// text-generation service; this client only knows how to ask it for copy.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// ListingFacts carries the structured attributes the generator writes copy from.
type ListingFacts struct {
	Make          string `json:"make"`
	Model         string `json:"model"`
	Year          int    `json:"year"`
	Category      string `json:"category"`
	TotalTime     int    `json:"total_time_hours"`
	EngineTime    int    `json:"engine_time_hours"`
	LocationCity  string `json:"location_city"`
	LocationCntry string `json:"location_country"`
}

// NewClient creates a new generation client. An empty baseURL yields a client
// whose calls fail with ErrNotConfigured.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Enabled reports whether a generation backend is configured
func (c *Client) Enabled() bool {
	return c != nil && c.baseURL != ""
}

// GenerateListingCopy asks the backend for a sales description built from the
// listing facts.
func (c *Client) GenerateListingCopy(ctx context.Context, facts ListingFacts) (string, error) {
	return c.generate(ctx, "/v1/generate/listing", facts)
}

// GenerateBlogDraft asks the backend for a blog post draft on the given topic.
func (c *Client) GenerateBlogDraft(ctx context.Context, topic string) (string, error) {
	return c.generate(ctx, "/v1/generate/blog", map[string]string{"topic": topic})
}

func (c *Client) generate(ctx context.Context, path string, payload interface{}) (string, error) {
	if !c.Enabled() {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("generation request error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("generation request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("generation request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("generation http error: status=%d body=%s", resp.StatusCode, string(raw))
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("generation response error: %w", err)
	}
	if out.Text == "" {
		return "", errors.New("generation response error: empty text")
	}

	return out.Text, nil
}
