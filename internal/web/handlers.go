package web

import (
	"encoding/base64"
	"io"
	"net/http"

	"github.com/mindease/go-mindease/internal/chat"
	"github.com/mindease/go-mindease/internal/session"
)

const (
	sessionCookieName = "session_id"

	// maxImageBytes bounds uploaded webcam captures.
	maxImageBytes = 8 << 20
)

// Handlers contains HTTP handlers for the web application.
type Handlers struct {
	service   *chat.Service
	templates *Templates
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(service *chat.Service, templates *Templates) *Handlers {
	return &Handlers{
		service:   service,
		templates: templates,
	}
}

// Home handles the companion page (GET /).
func (h *Handlers) Home(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	data := HomePageData{
		PageData: PageData{
			Title:       "MindEase",
			CurrentPath: r.URL.Path,
		},
		History: h.service.History(r.Context(), sessionID),
	}

	if r.URL.Query().Get("cleared") == "1" {
		data.Flash = &FlashMessage{Type: "success", Message: "Conversation cleared."}
	}

	h.render(w, "home", data)
}

// Chat runs one interaction through the pipeline (POST /chat).
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	text := r.FormValue("text")
	image := readImage(r)

	reply := h.service.Respond(r.Context(), sessionID, text, image)

	data := HomePageData{
		PageData: PageData{
			Title:       "MindEase",
			CurrentPath: "/",
		},
		Reply:   newReplyData(reply),
		History: h.service.History(r.Context(), sessionID),
	}

	h.render(w, "home", data)
}

// ClearChat discards the session's conversation history (POST /chat/clear).
func (h *Handlers) ClearChat(w http.ResponseWriter, r *http.Request) {
	sessionID := h.sessionID(w, r)

	if err := h.service.ClearHistory(r.Context(), sessionID); err != nil {
		http.Error(w, "Failed to clear chat", http.StatusInternalServerError)
		return
	}

	// Rotate the session so the cleared conversation cannot be restored
	// from the durable log under the old ID.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	http.Redirect(w, r, "/?cleared=1", http.StatusSeeOther)
}

// WellnessForm handles the wellness page (GET /wellness).
func (h *Handlers) WellnessForm(w http.ResponseWriter, r *http.Request) {
	data := WellnessPageData{
		PageData: PageData{
			Title:       "Wellness Companion",
			CurrentPath: r.URL.Path,
		},
	}

	h.render(w, "wellness", data)
}

// Wellness composes wellness advice (POST /wellness).
func (h *Handlers) Wellness(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	reply := h.service.Wellness(
		r.Context(),
		r.FormValue("flow"),
		r.FormValue("cramps"),
		r.FormValue("craving"),
	)

	data := WellnessPageData{
		PageData: PageData{
			Title:       "Wellness Companion",
			CurrentPath: "/wellness",
		},
		Reply: newWellnessData(reply),
	}

	h.render(w, "wellness", data)
}

// render writes a page template, falling back to a 500 on template errors.
func (h *Handlers) render(w http.ResponseWriter, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Render(w, page, data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
	}
}

// sessionID returns the request's session ID, minting one (and setting the
// cookie) when absent.
func (h *Handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id, err := session.NewID()
	if err != nil {
		// Fall back to a shared anonymous session rather than failing the
		// interaction.
		return "anonymous"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(session.TTL.Seconds()),
	})

	return id
}

// readImage extracts the optional webcam capture from the form.
// Any read failure means no image was submitted.
func readImage(r *http.Request) []byte {
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil
	}
	defer file.Close()

	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil
	}
	return image
}

// newReplyData converts a pipeline reply for template rendering.
func newReplyData(reply *chat.Reply) *ReplyData {
	if reply == nil {
		return nil
	}

	data := &ReplyData{
		Mood:    string(reply.Mood),
		Empathy: reply.Empathy,
		Gender:  reply.Gender,
	}

	if reply.Recommendation != nil {
		data.PlaylistName = reply.Recommendation.Name
		data.PlaylistURL = reply.Recommendation.URL
		data.PlaylistImage = reply.Recommendation.ImageURL
	}

	if len(reply.Audio) > 0 {
		data.AudioDataURI = "data:audio/mpeg;base64," + base64.StdEncoding.EncodeToString(reply.Audio)
	}

	return data
}

// newWellnessData converts a wellness reply for template rendering.
func newWellnessData(reply *chat.WellnessReply) *WellnessData {
	if reply == nil {
		return nil
	}

	data := &WellnessData{
		Advice: reply.Advice,
	}

	if reply.Recommendation != nil {
		data.PlaylistName = reply.Recommendation.Name
		data.PlaylistURL = reply.Recommendation.URL
	}

	return data
}
