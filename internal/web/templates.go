package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mindease/go-mindease/internal/session"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	// Load base layout
	layouts, err := fs.Glob(templatesFS, "layouts/*.html")
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	// Load partials
	partials, err := fs.Glob(templatesFS, "partials/*.html")
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	// Load each page template with layouts and partials
	pages, err := fs.Glob(templatesFS, "pages/*.html")
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")]

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		t.templates[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns an HSL color string for a mood label, used to
		// tint the mood badge.
		"moodColor": func(m string) string {
			switch m {
			case "happy":
				return "hsl(47, 90%, 55%)"
			case "sad":
				return "hsl(215, 60%, 55%)"
			case "angry":
				return "hsl(4, 70%, 55%)"
			case "fear":
				return "hsl(275, 45%, 55%)"
			case "surprise":
				return "hsl(165, 55%, 45%)"
			default: // neutral
				return "hsl(150, 20%, 50%)"
			}
		},

		// titlecase uppercases the first letter for display.
		"titlecase": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	Flash       *FlashMessage
	CurrentPath string
}

// FlashMessage represents a temporary notification message.
type FlashMessage struct {
	Type    string // "success", "error", "warning", "info"
	Message string
}

// ReplyData contains one assembled pipeline reply for templates.
type ReplyData struct {
	Mood          string
	Empathy       string
	Gender        string
	PlaylistName  string
	PlaylistURL   string
	PlaylistImage string
	AudioDataURI  string
}

// HomePageData contains data for the companion page template.
type HomePageData struct {
	PageData
	Reply   *ReplyData
	History []session.Turn
}

// WellnessData contains one wellness reply for templates.
type WellnessData struct {
	Advice       []string
	PlaylistName string
	PlaylistURL  string
}

// WellnessPageData contains data for the wellness page template.
type WellnessPageData struct {
	PageData
	Reply *WellnessData
}
