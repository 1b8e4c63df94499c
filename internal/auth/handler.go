package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"school-service/internal/user"
	"school-service/internal/web"
)

type Handler struct {
	service  *Service
	render   *web.Renderer
	validate *validator.Validate
	logger   *slog.Logger
}

func NewHandler(service *Service, render *web.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		render:   render,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes mounts the unauthenticated login routes.
func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", h.LoginPage)
	router.Get("/login", h.LoginPage)
	router.Post("/login", h.Login)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "login.html", web.Page{Title: "Login"})
}

// Login authenticates the submitted credentials and starts a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render.RenderError(w, r, http.StatusBadRequest)
		return
	}

	form := LoginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := h.validate.Struct(form); err != nil {
		h.render.Render(w, r, "login.html", web.Page{Title: "Login", Error: "Invalid username or password"})
		return
	}

	token, err := h.service.Login(r.Context(), form)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			h.render.Render(w, r, "login.html", web.Page{Title: "Login", Error: "Invalid username or password"})
			return
		}
		h.logger.Error("login failed", "error", err)
		h.render.RenderError(w, r, http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in", "username", form.Username)

	SetSessionCookie(w, token, h.service.SessionTTL())
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Dashboard is the authenticated landing page; the template picks the
// links to show by the principal's role.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	usr, ok := user.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.render.Render(w, r, "dashboard.html", web.Page{
		Title: "Dashboard",
		User: &web.Principal{
			ID:       usr.ID,
			Name:     usr.Name,
			Username: usr.Username,
			Role:     string(usr.Role),
		},
	})
}

// Logout destroys the session and returns to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(cookieName); err == nil {
		if err := h.service.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Error("logout failed", "error", err)
		}
	}

	ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
