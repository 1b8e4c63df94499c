package user

import "github.com/uptrace/bun"

// Role gates which routes a user may invoke.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Name     string `bun:"name,notnull" json:"name"`
	Username string `bun:"username,unique,notnull" json:"username"`
	Password string `bun:"password,notnull" json:"-"` // bcrypt hash, never rendered
	Role     Role   `bun:"role,notnull" json:"role"`
}

// CreateForm is the add-student / add-teacher form payload.
type CreateForm struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Password string `validate:"required"`
}
