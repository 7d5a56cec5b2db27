package emotion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/mindease/go-mindease/internal/mood"
)

func TestTextClientClassifyText(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		response       [][]textScore
		status         int
		wantLabel      mood.Label
		wantConfidence float64
		wantErr        bool
	}{
		{
			name: "argmax of distribution wins",
			text: "I feel so sad today",
			response: [][]textScore{{
				{Label: "sadness", Score: 0.91},
				{Label: "joy", Score: 0.03},
				{Label: "neutral", Score: 0.06},
			}},
			status:         http.StatusOK,
			wantLabel:      mood.Sad,
			wantConfidence: 0.91,
		},
		{
			name: "joy synonym normalizes to happy",
			text: "what a great day",
			response: [][]textScore{{
				{Label: "neutral", Score: 0.10},
				{Label: "joy", Score: 0.85},
			}},
			status:         http.StatusOK,
			wantLabel:      mood.Happy,
			wantConfidence: 0.85,
		},
		{
			name: "unknown model label normalizes to neutral",
			text: "ugh",
			response: [][]textScore{{
				{Label: "disgust", Score: 0.77},
			}},
			status:         http.StatusOK,
			wantLabel:      mood.Neutral,
			wantConfidence: 0.77,
		},
		{
			name:     "server error is returned",
			text:     "hello",
			response: nil,
			status:   http.StatusServiceUnavailable,
			wantErr:  true,
		},
		{
			name:     "empty distribution is an error",
			text:     "hello",
			response: [][]textScore{},
			status:   http.StatusOK,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("method = %s, want POST", r.Method)
				}
				var req textRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Errorf("decoding request: %v", err)
				}
				if req.Inputs != tt.text {
					t.Errorf("inputs = %q, want %q", req.Inputs, tt.text)
				}

				w.WriteHeader(tt.status)
				if tt.status == http.StatusOK {
					_ = json.NewEncoder(w).Encode(tt.response)
				}
			}))
			defer server.Close()

			client := NewTextClient(TextConfig{URL: server.URL})
			got, err := client.ClassifyText(context.Background(), tt.text)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.Source != mood.SourceText {
				t.Errorf("Source = %q, want %q", got.Source, mood.SourceText)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestTextClientBlankInputSkipsAPI(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	client := NewTextClient(TextConfig{URL: server.URL})

	for _, text := range []string{"", "   ", "\n\t"} {
		got, err := client.ClassifyText(context.Background(), text)
		if err != nil {
			t.Fatalf("ClassifyText(%q): %v", text, err)
		}
		if got.Label != mood.Neutral {
			t.Errorf("ClassifyText(%q).Label = %q, want neutral", text, got.Label)
		}
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("API called %d times for blank input, want 0", n)
	}
}

func TestTextClientAuthorizationHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q, want %q", got, "Bearer secret-token")
		}
		_ = json.NewEncoder(w).Encode([][]textScore{{{Label: "neutral", Score: 1}}})
	}))
	defer server.Close()

	client := NewTextClient(TextConfig{URL: server.URL, Token: "secret-token"})
	if _, err := client.ClassifyText(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
