package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"school-service/internal/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

type Service struct {
	sessions   *Repository
	users      user.Repository
	secret     string
	sessionTTL time.Duration
}

func NewService(sessions *Repository, users user.Repository, secret string, sessionTTL time.Duration) *Service {
	return &Service{
		sessions:   sessions,
		users:      users,
		secret:     secret,
		sessionTTL: sessionTTL,
	}
}

// Login verifies the credentials, stores a session row and returns the
// signed cookie token. The error is the same for unknown usernames and
// wrong passwords.
func (s *Service) Login(ctx context.Context, form LoginForm) (string, error) {
	usr, err := s.users.GetByUsername(ctx, form.Username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.Password), []byte(form.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	sessionID, err := newSessionID()
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().Add(s.sessionTTL)
	if err := s.sessions.CreateSession(ctx, usr.ID, sessionID, expiresAt); err != nil {
		return "", err
	}

	return generateToken(s.secret, usr, sessionID, s.sessionTTL)
}

// Authenticate resolves a cookie token to its principal. The signature,
// the session row and the user must all still be valid; logout or an
// expired session invalidates the token even before its own expiry.
func (s *Service) Authenticate(ctx context.Context, tokenStr string) (*user.User, error) {
	claims, err := parseToken(s.secret, tokenStr)
	if err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessions.GetSession(ctx, claims.SessionID)
	if err != nil {
		return nil, ErrInvalidSession
	}

	usr, err := s.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrInvalidSession
	}

	return usr, nil
}

// Logout destroys the session named by the token. An already destroyed
// session is a no-op.
func (s *Service) Logout(ctx context.Context, tokenStr string) error {
	claims, err := parseToken(s.secret, tokenStr)
	if err != nil {
		return nil
	}
	return s.sessions.DeleteSession(ctx, claims.SessionID)
}

// SessionTTL reports the configured session lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}
