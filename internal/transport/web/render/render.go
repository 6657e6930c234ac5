// Package render compiles the embedded HTML views once at startup and writes
// them out per request.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"school-portal/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Data is the view model shared by all pages.
type Data struct {
	Title    string
	Flash    string
	Username string
	Role     string
}

type Renderer struct {
	tpl *template.Template
}

func New() (*Renderer, error) {
	tpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tpl: tpl}, nil
}

// Page writes the named template with the given status.
func (rn *Renderer) Page(w http.ResponseWriter, status int, name string, data Data) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := rn.tpl.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already out; all we can do is log.
		logger.Logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

// Text writes a plain-text body, used for the unknown-role dashboard.
func (rn *Renderer) Text(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
