package marks

import (
	"context"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, mark *Mark) (*Mark, error)
	ListByStudent(ctx context.Context, studentID int) ([]Mark, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, mark *Mark) (*Mark, error) {
	_, err := r.db.NewInsert().Model(mark).Exec(ctx)
	if err != nil {
		return nil, err
	}
	return mark, nil
}

func (r *repository) ListByStudent(ctx context.Context, studentID int) ([]Mark, error) {
	var rows []Mark
	err := r.db.NewSelect().
		Model(&rows).
		Where("student_id = ?", studentID).
		Order("id ASC").
		Scan(ctx)
	return rows, err
}
