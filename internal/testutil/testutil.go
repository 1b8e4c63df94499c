package testutil

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"school-service/internal/app"
	"school-service/internal/config"
	"school-service/internal/db"
	"school-service/internal/user"
)

// Fixture is a fully wired application over an in-memory store.
type Fixture struct {
	Router chi.Router
	DB     *bun.DB
	Config *config.Config
}

// NewFixture builds the real router over an in-memory SQLite database,
// with migrations run and the admin account seeded. The name keeps
// parallel test databases apart.
func NewFixture(t *testing.T, name string) *Fixture {
	t.Helper()

	cfg := &config.Config{
		Env: "test",
		Auth: config.AuthConfig{
			JWTSecret:         "test-secret-key-for-testing",
			SessionTTLMinutes: 15,
		},
		Admin: config.AdminConfig{
			Name:     "Admin",
			Username: "admin",
			Password: "adminpassword",
		},
	}

	database := db.NewWithDSN("file:" + name + "?mode=memory&cache=shared&_foreign_keys=1")
	t.Cleanup(func() { db.Close(database) })

	require.NoError(t, app.Setup(t.Context(), cfg, database))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &Fixture{
		Router: app.NewRouter(cfg, database, logger),
		DB:     database,
		Config: cfg,
	}
}

// CleanupTables truncates the given tables between subtests.
func CleanupTables(t *testing.T, database *bun.DB, tables ...string) {
	t.Helper()
	for _, table := range tables {
		_, err := database.ExecContext(t.Context(), "DELETE FROM "+table)
		require.NoError(t, err)
	}
}

// CreateUser inserts an account with a real bcrypt hash.
func CreateUser(t *testing.T, database *bun.DB, name, username, password string, role user.Role) *user.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	usr := &user.User{
		Name:     name,
		Username: username,
		Password: string(hashed),
		Role:     role,
	}
	_, err = database.NewInsert().Model(usr).Exec(t.Context())
	require.NoError(t, err)
	return usr
}

// Login performs the login flow and returns the session cookie.
func Login(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()

	w := PostForm(router, "/login", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusSeeOther, w.Code, "login should redirect to the dashboard")

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

// PostForm sends an urlencoded form POST through the router.
func PostForm(router http.Handler, path string, values url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Get sends a GET through the router.
func Get(router http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
