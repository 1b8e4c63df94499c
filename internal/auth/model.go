package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// Session is the server-side state binding a cookie to a principal.
// Login inserts a row, logout deletes it; expired rows are ignored.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:se"`

	ID        string    `bun:"id,pk"`
	UserID    int       `bun:"user_id,notnull"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// LoginForm is the login form payload.
type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}
