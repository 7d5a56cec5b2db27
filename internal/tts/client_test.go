package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientSynthesize(t *testing.T) {
	audio := []byte("RIFF-fake-audio-bytes")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}

		var req synthesisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Text != "You seem calm today." {
			t.Errorf("text = %q", req.Text)
		}
		if req.Rate != DefaultRate {
			t.Errorf("rate = %d, want %d", req.Rate, DefaultRate)
		}

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL})
	got, err := client.Synthesize(context.Background(), "You seem calm today.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(audio) {
		t.Errorf("audio = %q, want %q", got, audio)
	}
}

func TestClientSynthesizeCustomRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req synthesisRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Rate != 120 {
			t.Errorf("rate = %d, want 120", req.Rate)
		}
		_, _ = w.Write([]byte("audio"))
	}))
	defer server.Close()

	client := NewClient(Config{URL: server.URL, Rate: 120})
	if _, err := client.Synthesize(context.Background(), "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		status  int
		body    []byte
		wantErr bool
	}{
		{name: "blank text", text: "   ", status: http.StatusOK, body: []byte("x"), wantErr: true},
		{name: "server error", text: "hello", status: http.StatusInternalServerError, wantErr: true},
		{name: "empty audio", text: "hello", status: http.StatusOK, body: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if tt.body != nil {
					_, _ = w.Write(tt.body)
				}
			}))
			defer server.Close()

			client := NewClient(Config{URL: server.URL})
			_, err := client.Synthesize(context.Background(), tt.text)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDisabledSynthesizer(t *testing.T) {
	_, err := Disabled{}.Synthesize(context.Background(), "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
