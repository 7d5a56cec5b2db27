package emotion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/mindease/go-mindease/internal/mood"
)

// FaceConfig holds face-classifier configuration.
type FaceConfig struct {
	// URL is the analyze endpoint of the face emotion service.
	URL string
	// Timeout bounds each classification request. Zero means 15s.
	Timeout time.Duration
}

// FaceClient calls a face-analysis service that returns a dominant emotion
// for an uploaded image. Detection enforcement is disabled on the service
// side: an image with no clear face yields ErrNoFace rather than a hard
// failure.
type FaceClient struct {
	url        string
	httpClient *http.Client
}

// NewFaceClient creates a face-emotion client from the provided configuration.
func NewFaceClient(cfg FaceConfig) *FaceClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &FaceClient{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// faceResponse is the JSON response from the analyze endpoint.
type faceResponse struct {
	DominantEmotion string             `json:"dominant_emotion"`
	Emotion         map[string]float64 `json:"emotion"`
	DominantGender  string             `json:"dominant_gender"`
	FaceDetected    bool               `json:"face_detected"`
}

// ClassifyImage uploads an image and returns the dominant emotion as a
// face-source signal, plus the service's gender estimate when present.
func (c *FaceClient) ClassifyImage(ctx context.Context, image []byte) (FaceResult, error) {
	if len(image) == 0 {
		return FaceResult{}, ErrNoFace
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", "capture.jpg")
	if err != nil {
		return FaceResult{}, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return FaceResult{}, fmt.Errorf("writing image data: %w", err)
	}
	// Ask the service not to fail on undetectable faces.
	if err := writer.WriteField("enforce_detection", "false"); err != nil {
		return FaceResult{}, fmt.Errorf("writing form field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return FaceResult{}, fmt.Errorf("closing multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &buf)
	if err != nil {
		return FaceResult{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("User-Agent", textUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return FaceResult{}, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FaceResult{}, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return FaceResult{}, fmt.Errorf("face API status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed faceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return FaceResult{}, fmt.Errorf("parsing face response: %w", err)
	}

	if parsed.DominantEmotion == "" {
		return FaceResult{}, ErrNoFace
	}

	label := mood.Normalize(parsed.DominantEmotion)

	// Scores arrive as percentages; scale to [0,1].
	confidence := parsed.Emotion[parsed.DominantEmotion] / 100
	if confidence < 0 || confidence > 1 {
		confidence = 0
	}

	return FaceResult{
		Signal: mood.Signal{
			Label:      label,
			Source:     mood.SourceFace,
			Confidence: confidence,
		},
		Gender: strings.ToLower(parsed.DominantGender),
	}, nil
}

var _ FaceClassifier = (*FaceClient)(nil)
