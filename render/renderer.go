// Package render owns page templates and one-shot flash messages. Page HTML
// stays deliberately thin; the application's value is in the handlers and the
// persistence layer, not the markup.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Globals is the shop data injected into every page.
type Globals struct {
	WhatsAppNumber string
	ShopAddress    string
	PromoBanner    string
}

// Page is the data envelope every template receives.
type Page struct {
	Globals
	LoggedIn      bool
	AdminLoggedIn bool
	Flashes       []Flash
	Data          any
}

// Renderer executes the embedded page templates.
type Renderer struct {
	tmpl    *template.Template
	globals Globals
}

// New parses the embedded templates.
func New(g Globals) (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, globals: g}, nil
}

// Show writes one page, draining any pending flash messages into it. Extra
// flashes render on this page directly; handlers use them for validation
// errors raised while processing the same request.
func (rd *Renderer) Show(w http.ResponseWriter, r *http.Request, name string, loggedIn, adminLoggedIn bool, data any, extra ...Flash) {
	page := Page{
		Globals:       rd.globals,
		LoggedIn:      loggedIn,
		AdminLoggedIn: adminLoggedIn,
		Flashes:       append(PopFlashes(w, r), extra...),
		Data:          data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.tmpl.ExecuteTemplate(w, name, page); err != nil {
		logrus.Errorf("error executing template %s: %v", name, err)
	}
}
