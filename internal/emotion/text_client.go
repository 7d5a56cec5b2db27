package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mindease/go-mindease/internal/mood"
)

const textUserAgent = "mindease/1.0"

// TextConfig holds text-classifier configuration.
type TextConfig struct {
	// URL is the inference endpoint for the text emotion model.
	URL string
	// Token is an optional bearer token for the inference service.
	Token string
	// Timeout bounds each classification request. Zero means 10s.
	Timeout time.Duration
}

// TextClient calls a hosted text-emotion model that returns a scored label
// distribution. Only the arg-max label is used.
type TextClient struct {
	url        string
	token      string
	httpClient *http.Client
}

// NewTextClient creates a text-emotion client from the provided configuration.
func NewTextClient(cfg TextConfig) *TextClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &TextClient{
		url:   cfg.URL,
		token: cfg.Token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// textRequest is the JSON request body for the inference endpoint.
type textRequest struct {
	Inputs string `json:"inputs"`
}

// textScore is one (label, score) pair in the model's output distribution.
type textScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// ClassifyText sends text to the inference endpoint and returns the
// best-scoring label as a text-source signal. Blank input returns a neutral
// signal without calling the service.
func (c *TextClient) ClassifyText(ctx context.Context, text string) (mood.Signal, error) {
	if strings.TrimSpace(text) == "" {
		return mood.Signal{Label: mood.Neutral, Source: mood.SourceText}, nil
	}

	payload, err := json.Marshal(textRequest{Inputs: text})
	if err != nil {
		return mood.Signal{}, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return mood.Signal{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", textUserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return mood.Signal{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mood.Signal{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return mood.Signal{}, fmt.Errorf("inference API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// The model returns one distribution per input: [[{label, score}, ...]]
	var distributions [][]textScore
	if err := json.Unmarshal(body, &distributions); err != nil {
		return mood.Signal{}, fmt.Errorf("parsing inference response: %w", err)
	}
	if len(distributions) == 0 || len(distributions[0]) == 0 {
		return mood.Signal{}, fmt.Errorf("inference API returned empty distribution")
	}

	best := distributions[0][0]
	for _, s := range distributions[0][1:] {
		if s.Score > best.Score {
			best = s
		}
	}

	return mood.Signal{
		Label:      mood.Normalize(best.Label),
		Source:     mood.SourceText,
		Confidence: best.Score,
	}, nil
}

var _ TextClassifier = (*TextClient)(nil)
