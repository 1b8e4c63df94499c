package auth

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"school-service/internal/user"
)

const cookieName = "token"

// Policy maps a route path to the role allowed to invoke it. Paths not
// listed only require authentication. The policy is checked before any
// handler body runs; a mismatched role never reaches the store.
type Policy map[string]user.Role

// DefaultPolicy is the route gate for the application's protected pages.
var DefaultPolicy = Policy{
	"/add_student":     user.RoleAdmin,
	"/manage_students": user.RoleAdmin,
	"/add_teacher":     user.RoleAdmin,
	"/manage_teachers": user.RoleAdmin,
	"/add_marks":       user.RoleTeacher,
	"/view_marks":      user.RoleStudent,
}

// RequireAuth resolves the session cookie to a principal and stores it in
// the request context. Unauthenticated requests are sent to the login page.
func RequireAuth(service *Service, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			usr, err := service.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				logger.Warn("invalid session", "path", r.URL.Path, "error", err)
				ClearSessionCookie(w)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), usr)))
		})
	}
}

// RequireRole enforces the policy table. A principal whose role does not
// match the route's entry is redirected to the dashboard.
func RequireRole(policy Policy) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			required, gated := policy[r.URL.Path]
			if gated {
				usr, ok := user.FromContext(r.Context())
				if !ok || usr.Role != required {
					http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetSessionCookie sets the session token in a secure HttpOnly cookie.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	env := os.Getenv("ENV")

	sameSite := http.SameSiteStrictMode
	if env == "development" || env == "local" {
		sameSite = http.SameSiteLaxMode
	}

	// Secure cookies require HTTPS - enable for production environments
	secure := env == "production" || env == "prod"

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
