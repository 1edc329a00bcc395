package review

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	UserID    uuid.UUID `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, r *Review) error
	ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]Review, error)
}
