package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "mindease/1.0"

// Config holds speech-synthesis client configuration.
type Config struct {
	// URL is the synthesis endpoint.
	URL string
	// Rate is the speech rate in words per minute. Zero means DefaultRate.
	Rate int
	// Timeout bounds each synthesis request. Zero means 20s.
	Timeout time.Duration
}

// Client calls an HTTP speech-synthesis service that accepts text and a
// speech rate and returns encoded audio bytes.
type Client struct {
	url        string
	rate       int
	httpClient *http.Client
}

// NewClient creates a speech-synthesis client from the provided configuration.
func NewClient(cfg Config) *Client {
	rate := cfg.Rate
	if rate <= 0 {
		rate = DefaultRate
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		url:  cfg.URL,
		rate: rate,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// synthesisRequest is the JSON request body for the synthesis endpoint.
type synthesisRequest struct {
	Text string `json:"text"`
	Rate int    `json:"rate"`
}

// Synthesize sends text to the synthesis service and returns audio bytes.
func (c *Client) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	payload, err := json.Marshal(synthesisRequest{Text: text, Rate: c.rate})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("synthesis API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio body: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("synthesis API returned empty audio")
	}

	return audio, nil
}

var _ Synthesizer = (*Client)(nil)
