package auth

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

type Repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Repository {
	return &Repository{db: db}
}

// CreateSession stores a new session row.
func (r *Repository) CreateSession(ctx context.Context, userID int, sessionID string, expiresAt time.Time) error {
	session := &Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	_, err := r.db.NewInsert().Model(session).Exec(ctx)
	return err
}

// GetSession retrieves an unexpired session by id.
func (r *Repository) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	session := &Session{}
	err := r.db.NewSelect().
		Model(session).
		Where("id = ?", sessionID).
		Where("expires_at > ?", time.Now()).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSession removes a session (for logout). Missing ids are a no-op.
func (r *Repository) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.db.NewDelete().
		Model((*Session)(nil)).
		Where("id = ?", sessionID).
		Exec(ctx)
	return err
}

// DeleteExpiredSessions removes all expired sessions (cleanup).
func (r *Repository) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*Session)(nil)).
		Where("expires_at < ?", time.Now()).
		Exec(ctx)
	return err
}

// DeleteUserSessions removes all sessions belonging to a user.
func (r *Repository) DeleteUserSessions(ctx context.Context, userID int) error {
	_, err := r.db.NewDelete().
		Model((*Session)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	return err
}
