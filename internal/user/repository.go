package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, usr *User) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, usr *User) (*User, error) {
	_, err := r.db.NewInsert().Model(usr).Exec(ctx)
	if err != nil {
		// the unique index on username is the backstop when two inserts race
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return usr, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*User, error) {
	usr := new(User)
	err := r.db.NewSelect().Model(usr).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	usr := new(User)
	err := r.db.NewSelect().Model(usr).Where("username = ?", username).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return usr, nil
}

func (r *repository) ListByRole(ctx context.Context, role Role) ([]User, error) {
	var users []User
	err := r.db.NewSelect().Model(&users).Where("role = ?", role).Order("id ASC").Scan(ctx)
	return users, err
}

// Delete removes a user by id. Deleting a missing id is a no-op.
func (r *repository) Delete(ctx context.Context, id int) error {
	_, err := r.db.NewDelete().Model((*User)(nil)).Where("id = ?", id).Exec(ctx)
	return err
}
