package web

import (
	"bytes"
	"io"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/mindease/go-mindease/internal/chat"
	"github.com/mindease/go-mindease/internal/emotion"
	"github.com/mindease/go-mindease/internal/history"
	"github.com/mindease/go-mindease/internal/session"
	"github.com/mindease/go-mindease/internal/spotify"
	"github.com/mindease/go-mindease/internal/tts"
	webfs "github.com/mindease/go-mindease/web"
)

// newTestServer builds a server with all collaborators disabled.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	service := chat.NewService(
		emotion.DisabledText{},
		emotion.DisabledFace{},
		spotify.Disabled{},
		tts.Disabled{},
		history.Discard{},
		session.NewMemoryStore(),
	)

	templates, err := fs.Sub(webfs.TemplatesFS, "templates")
	if err != nil {
		t.Fatalf("templates sub fs: %v", err)
	}
	static, err := fs.Sub(webfs.StaticFS, "static")
	if err != nil {
		t.Fatalf("static sub fs: %v", err)
	}

	server, err := NewServer(ServerConfig{
		Service:     service,
		TemplatesFS: templates,
		StaticFS:    static,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return server
}

func chatForm(t *testing.T, text string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("text", text); err != nil {
		t.Fatalf("writing form field: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("closing form: %v", err)
	}
	return &body, w.FormDataContentType()
}

func TestHomePage(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	page := rec.Body.String()
	if !strings.Contains(page, "How are you feeling today?") {
		t.Error("home page missing companion prompt")
	}
	if !strings.Contains(page, `action="/chat"`) {
		t.Error("home page missing chat form")
	}

	// First visit mints a session cookie.
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == sessionCookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("no session cookie set on first visit")
	}
}

func TestChatDegradedStillRenders(t *testing.T) {
	server := newTestServer(t)

	body, contentType := chatForm(t, "I feel so sad today")
	req := httptest.NewRequest(http.MethodPost, "/chat", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	page := rec.Body.String()
	// All collaborators are disabled: mood falls back to neutral and the
	// recommendation is an explicit not-found notice.
	if !strings.Contains(page, "Neutral") {
		t.Error("page missing resolved mood")
	}
	if !strings.Contains(page, "Playlist: not found") {
		t.Error("page missing not-found notice")
	}
	if !strings.Contains(page, "Conversation History") {
		t.Error("page missing conversation history after a turn")
	}
}

func TestClearChatRedirects(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/chat/clear", strings.NewReader(""))
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "old-session"})
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/?cleared=1" {
		t.Errorf("Location = %q, want /?cleared=1", loc)
	}

	// The old session cookie is dropped so the next visit starts fresh.
	var rotated bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName && c.MaxAge < 0 {
			rotated = true
		}
	}
	if !rotated {
		t.Error("session cookie not expired on clear")
	}
}

func TestClearedFlashOnHomePage(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/?cleared=1", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Conversation cleared.") {
		t.Error("home page missing cleared flash message")
	}
}

func TestWellnessPage(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/wellness", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `action="/wellness"`) {
		t.Error("wellness page missing form")
	}
}

func TestWellnessSubmission(t *testing.T) {
	server := newTestServer(t)

	form := url.Values{
		"flow":    {"Brown"},
		"cramps":  {"Severe"},
		"craving": {"Chocolate"},
	}
	req := httptest.NewRequest(http.MethodPost, "/wellness", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	page := rec.Body.String()
	for _, want := range []string{
		"Old blood flow",
		"Severe cramps",
		"Craving sweets",
		"Relax with:",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestStaticFiles(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/static/style.css", nil)
	rec := httptest.NewRecorder()
	server.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !bytes.Contains(body, []byte("--accent")) {
		t.Error("stylesheet content missing")
	}
}
