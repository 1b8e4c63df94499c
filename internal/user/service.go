package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrInvalidInput  = errors.New("invalid input")
)

type Service interface {
	Create(ctx context.Context, form CreateForm, role Role) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	Delete(ctx context.Context, id int) error
	SeedAdmin(ctx context.Context, name, username, password string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create hashes the password and stores a new account with the given role.
func (s *service) Create(ctx context.Context, form CreateForm, role Role) (*User, error) {
	if !role.Valid() {
		return nil, ErrInvalidInput
	}

	// Pre-check keeps the common case friendly; the unique index catches races.
	if existing, _ := s.repo.GetByUsername(ctx, form.Username); existing != nil {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &User{
		Name:     form.Name,
		Username: form.Username,
		Password: string(hashed),
		Role:     role,
	}
	return s.repo.Create(ctx, usr)
}

func (s *service) GetByID(ctx context.Context, id int) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

func (s *service) ListByRole(ctx context.Context, role Role) ([]User, error) {
	return s.repo.ListByRole(ctx, role)
}

func (s *service) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// SeedAdmin creates the admin account on first run if it does not exist yet.
func (s *service) SeedAdmin(ctx context.Context, name, username, password string) error {
	_, err := s.repo.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return err
	}

	_, err = s.Create(ctx, CreateForm{Name: name, Username: username, Password: password}, RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	slog.InfoContext(ctx, "seeded admin account", "username", username)
	return nil
}
