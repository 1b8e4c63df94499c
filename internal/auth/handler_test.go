package auth_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-service/internal/testutil"
	"school-service/internal/user"
)

func TestAuth_Shared(t *testing.T) {
	fixture := testutil.NewFixture(t, "auth_handler_test")

	testutil.CreateUser(t, fixture.DB, "Sam Student", "sam", "sampass", user.RoleStudent)

	t.Run("LoginPage", func(t *testing.T) {
		w := testutil.Get(fixture.Router, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Login")
	})

	t.Run("Login_Success", func(t *testing.T) {
		cookie := testutil.Login(t, fixture.Router, "sam", "sampass")

		w := testutil.Get(fixture.Router, "/dashboard", cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sam Student")
		assert.Contains(t, w.Body.String(), "student")
	})

	t.Run("Dashboard_RoleDrivenLinks", func(t *testing.T) {
		admin := testutil.Login(t, fixture.Router, "admin", "adminpassword")
		w := testutil.Get(fixture.Router, "/dashboard", admin)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/manage_students")
		assert.Contains(t, w.Body.String(), "/manage_teachers")
		assert.NotContains(t, w.Body.String(), "/add_marks")

		studentSession := testutil.Login(t, fixture.Router, "sam", "sampass")
		w = testutil.Get(fixture.Router, "/dashboard", studentSession)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/view_marks")
		assert.NotContains(t, w.Body.String(), "/manage_students")
	})

	t.Run("Login_WrongPassword", func(t *testing.T) {
		w := testutil.PostForm(fixture.Router, "/login", url.Values{
			"username": {"sam"},
			"password": {"wrong"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password")

		for _, cookie := range w.Result().Cookies() {
			assert.NotEqual(t, "token", cookie.Name, "no session cookie on failed login")
		}
	})

	t.Run("Login_UnknownUser", func(t *testing.T) {
		w := testutil.PostForm(fixture.Router, "/login", url.Values{
			"username": {"nobody"},
			"password": {"whatever"},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid username or password")
	})

	t.Run("ProtectedRoute_NoSession", func(t *testing.T) {
		w := testutil.Get(fixture.Router, "/dashboard")
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("ProtectedRoute_GarbageToken", func(t *testing.T) {
		w := testutil.Get(fixture.Router, "/dashboard", &http.Cookie{Name: "token", Value: "not-a-token"})
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Logout_RevokesSession", func(t *testing.T) {
		cookie := testutil.Login(t, fixture.Router, "sam", "sampass")

		w := testutil.Get(fixture.Router, "/logout", cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))

		// the session row is gone; the old cookie no longer authenticates
		w = testutil.Get(fixture.Router, "/dashboard", cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("Logout_Twice_NoOp", func(t *testing.T) {
		cookie := testutil.Login(t, fixture.Router, "sam", "sampass")

		w := testutil.Get(fixture.Router, "/logout", cookie)
		require.Equal(t, http.StatusSeeOther, w.Code)

		w = testutil.Get(fixture.Router, "/logout", cookie)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	})
}
