package marks

import (
	"time"

	"github.com/uptrace/bun"

	"school-service/internal/user"
)

// Mark is one append-only entry tying a student to a subject and score.
// Marks are never updated or deleted.
type Mark struct {
	bun.BaseModel `bun:"table:marks,alias:m"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	StudentID int       `bun:"student_id,notnull" json:"studentId"`
	Subject   string    `bun:"subject,notnull" json:"subject"`
	Score     float64   `bun:"score,notnull" json:"score"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	// CASCADE so removing a student account takes its marks along
	// instead of tripping the foreign key.
	Student *user.User `bun:"rel:belongs-to,join:student_id=id,on_delete:CASCADE" json:"-"`
}

// AddForm is the add-marks form payload.
type AddForm struct {
	StudentID int     `validate:"required,gt=0"`
	Subject   string  `validate:"required"`
	Score     float64 `validate:"gte=0"`
}
