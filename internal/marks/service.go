package marks

import (
	"context"
	"errors"

	"school-service/internal/user"
)

var (
	ErrStudentNotFound = errors.New("student not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	Add(ctx context.Context, form AddForm) (*Mark, error)
	ListForStudent(ctx context.Context, studentID int) ([]Mark, error)
	ListStudents(ctx context.Context) ([]user.User, error)
}

type service struct {
	repo  Repository
	users user.Repository
}

func NewService(repo Repository, users user.Repository) Service {
	return &service{repo: repo, users: users}
}

// Add records one mark for a student. The target must exist and hold the
// student role before the row is written.
func (s *service) Add(ctx context.Context, form AddForm) (*Mark, error) {
	target, err := s.users.GetByID(ctx, form.StudentID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if target.Role != user.RoleStudent {
		return nil, ErrStudentNotFound
	}

	mark := &Mark{
		StudentID: form.StudentID,
		Subject:   form.Subject,
		Score:     form.Score,
	}
	return s.repo.Create(ctx, mark)
}

func (s *service) ListForStudent(ctx context.Context, studentID int) ([]Mark, error) {
	if studentID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByStudent(ctx, studentID)
}

// ListStudents supplies the selection source for the add-marks form.
func (s *service) ListStudents(ctx context.Context) ([]user.User, error) {
	return s.users.ListByRole(ctx, user.RoleStudent)
}
