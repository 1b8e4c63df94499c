package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

const flashCookie = "flash"

// Principal is the logged-in user as the templates see it. Handlers
// populate it from the authenticated user; this package stays a leaf.
type Principal struct {
	ID       int
	Name     string
	Username string
	Role     string
}

// Page is the data every template renders from.
type Page struct {
	Title string
	User  *Principal
	Flash string
	Error string
	Data  any
}

type Renderer struct {
	tmpl   *template.Template
	logger *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	return &Renderer{
		tmpl:   template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger: logger,
	}
}

// Render executes the named template. A pending flash notice is consumed
// into the page unless the handler already set one.
func (rnd *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, page Page) {
	if page.Flash == "" {
		page.Flash = PopFlash(w, r)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rnd.tmpl.ExecuteTemplate(w, name, page); err != nil {
		rnd.logger.Error("failed to render template", "template", name, "error", err)
	}
}

// RenderError writes a minimal error page with the given status.
func (rnd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	page := Page{Title: "Error", Error: http.StatusText(status)}
	if err := rnd.tmpl.ExecuteTemplate(w, "error.html", page); err != nil {
		rnd.logger.Error("failed to render error page", "error", err)
	}
}

// SetFlash stores a one-shot notice shown on the next rendered page.
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// PopFlash reads and clears the pending flash notice, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
