package user_test

import (
	"net/http"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-service/internal/app"
	"school-service/internal/marks"
	"school-service/internal/testutil"
	"school-service/internal/user"
)

func TestUserAdmin_Shared(t *testing.T) {
	fixture := testutil.NewFixture(t, "user_handler_test")

	admin := testutil.Login(t, fixture.Router, "admin", "adminpassword")

	countByUsername := func(t *testing.T, username string) int {
		t.Helper()
		count, err := fixture.DB.NewSelect().
			Model((*user.User)(nil)).
			Where("username = ?", username).
			Count(t.Context())
		require.NoError(t, err)
		return count
	}

	t.Run("AddStudent_ThenListed", func(t *testing.T) {
		w := testutil.PostForm(fixture.Router, "/add_student", url.Values{
			"name":     {"A"},
			"username": {"a1"},
			"password": {"p"},
		}, admin)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/manage_students", w.Header().Get("Location"))

		w = testutil.Get(fixture.Router, "/manage_students", admin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a1")

		created := new(user.User)
		err := fixture.DB.NewSelect().Model(created).Where("username = ?", "a1").Scan(t.Context())
		require.NoError(t, err)
		assert.Equal(t, user.RoleStudent, created.Role)
		assert.NotEqual(t, "p", created.Password, "password must be stored hashed")
	})

	t.Run("AddStudent_DuplicateUsername", func(t *testing.T) {
		first := testutil.PostForm(fixture.Router, "/add_student", url.Values{
			"name":     {"Dana"},
			"username": {"dup"},
			"password": {"secret"},
		}, admin)
		require.Equal(t, http.StatusSeeOther, first.Code)

		second := testutil.PostForm(fixture.Router, "/add_student", url.Values{
			"name":     {"Other"},
			"username": {"dup"},
			"password": {"secret2"},
		}, admin)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Contains(t, second.Body.String(), "Username already taken")

		assert.Equal(t, 1, countByUsername(t, "dup"), "exactly one account persists")
	})

	t.Run("AddStudent_MissingFields", func(t *testing.T) {
		w := testutil.PostForm(fixture.Router, "/add_student", url.Values{
			"name":     {"No Password"},
			"username": {"nopass"},
		}, admin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "All fields are required")
		assert.Zero(t, countByUsername(t, "nopass"))
	})

	t.Run("DeleteStudent_SecondDeleteIsNoOp", func(t *testing.T) {
		created := testutil.CreateUser(t, fixture.DB, "Gone Soon", "gone", "pw", user.RoleStudent)

		form := url.Values{"student_id": {strconv.Itoa(created.ID)}}

		w := testutil.PostForm(fixture.Router, "/manage_students", form, admin)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/manage_students", w.Header().Get("Location"))
		assert.Zero(t, countByUsername(t, "gone"))

		// deleting the same id again is a silent no-op
		w = testutil.PostForm(fixture.Router, "/manage_students", form, admin)
		assert.Equal(t, http.StatusSeeOther, w.Code)
	})

	t.Run("DeleteStudent_WithMarksRecorded", func(t *testing.T) {
		created := testutil.CreateUser(t, fixture.DB, "Marked", "marked", "pw", user.RoleStudent)

		mark := &marks.Mark{StudentID: created.ID, Subject: "Math", Score: 88.5}
		_, err := fixture.DB.NewInsert().Model(mark).Exec(t.Context())
		require.NoError(t, err)

		w := testutil.PostForm(fixture.Router, "/manage_students", url.Values{
			"student_id": {strconv.Itoa(created.ID)},
		}, admin)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/manage_students", w.Header().Get("Location"))
		assert.Zero(t, countByUsername(t, "marked"))

		// the student's marks go with the account
		markCount, err := fixture.DB.NewSelect().
			Model((*marks.Mark)(nil)).
			Where("student_id = ?", created.ID).
			Count(t.Context())
		require.NoError(t, err)
		assert.Zero(t, markCount)
	})

	t.Run("AddTeacher_ThenListed", func(t *testing.T) {
		w := testutil.PostForm(fixture.Router, "/add_teacher", url.Values{
			"name":     {"Tina Teacher"},
			"username": {"tina"},
			"password": {"teachpass"},
		}, admin)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/manage_teachers", w.Header().Get("Location"))

		w = testutil.Get(fixture.Router, "/manage_teachers", admin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "tina")

		created := new(user.User)
		err := fixture.DB.NewSelect().Model(created).Where("username = ?", "tina").Scan(t.Context())
		require.NoError(t, err)
		assert.Equal(t, user.RoleTeacher, created.Role)
	})

	t.Run("ManageStudents_ListsOnlyStudents", func(t *testing.T) {
		w := testutil.Get(fixture.Router, "/manage_students", admin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "tina", "teachers must not appear in the student list")
	})

	t.Run("Listing_IdempotentAcrossGets", func(t *testing.T) {
		first := testutil.Get(fixture.Router, "/manage_students", admin)
		second := testutil.Get(fixture.Router, "/manage_students", admin)
		assert.Equal(t, first.Body.String(), second.Body.String())
	})

	t.Run("NonAdmin_RedirectedWithoutMutation", func(t *testing.T) {
		testutil.CreateUser(t, fixture.DB, "Terry", "terry", "terrypass", user.RoleTeacher)
		teacher := testutil.Login(t, fixture.Router, "terry", "terrypass")

		w := testutil.Get(fixture.Router, "/add_student", teacher)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))

		w = testutil.PostForm(fixture.Router, "/add_student", url.Values{
			"name":     {"Sneaky"},
			"username": {"sneaky"},
			"password": {"pw"},
		}, teacher)
		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/dashboard", w.Header().Get("Location"))
		assert.Zero(t, countByUsername(t, "sneaky"), "role check must precede the insert")
	})

	t.Run("SeedAdmin_Idempotent", func(t *testing.T) {
		// running setup again must not create a second admin
		require.NoError(t, app.Setup(t.Context(), fixture.Config, fixture.DB))
		assert.Equal(t, 1, countByUsername(t, "admin"))
	})
}
