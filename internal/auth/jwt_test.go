package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-service/internal/user"
)

const testSecret = "test-secret"

func testUser() *user.User {
	return &user.User{ID: 7, Name: "Terry", Username: "terry", Role: user.RoleTeacher}
}

func TestToken_RoundTrip(t *testing.T) {
	token, err := generateToken(testSecret, testUser(), "session-1", time.Minute)
	require.NoError(t, err)

	claims, err := parseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "terry", claims.Username)
	assert.Equal(t, user.RoleTeacher, claims.Role)
	assert.Equal(t, "session-1", claims.SessionID)
}

func TestToken_WrongSecret(t *testing.T) {
	token, err := generateToken(testSecret, testUser(), "session-1", time.Minute)
	require.NoError(t, err)

	_, err = parseToken("other-secret", token)
	assert.Error(t, err)
}

func TestToken_Expired(t *testing.T) {
	token, err := generateToken(testSecret, testUser(), "session-1", -time.Minute)
	require.NoError(t, err)

	_, err = parseToken(testSecret, token)
	assert.Error(t, err)
}

func TestToken_Garbage(t *testing.T) {
	_, err := parseToken(testSecret, "not.a.token")
	assert.Error(t, err)
}

func TestToken_EmptySecret(t *testing.T) {
	_, err := generateToken("", testUser(), "session-1", time.Minute)
	assert.Error(t, err)

	_, err = parseToken("", "whatever")
	assert.Error(t, err)
}

func TestNewSessionID_Unique(t *testing.T) {
	a, err := newSessionID()
	require.NoError(t, err)
	b, err := newSessionID()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
