package list

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type CourseList struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsPublic    bool      `json:"is_public"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	CourseCount int       `json:"course_count"`
	AuthorName  *string   `json:"author_name"`
}

// Result is the projection of a list returned by search. Only public lists
// are ever searchable.
type Result = CourseList

var (
	ErrListNotFound        = errors.New("list not found")
	ErrCourseAlreadyInList = errors.New("course already in list")
)

func (l *CourseList) Validate() error {
	if l.Title == "" {
		return errors.New("title is required")
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, l *CourseList) error
	FindByID(ctx context.Context, id uuid.UUID) (*CourseList, error)
	AddCourse(ctx context.Context, listID, courseID uuid.UUID) error
	ListPublic(ctx context.Context, limit, offset int) ([]CourseList, error)

	// SearchPublic matches public list titles and descriptions against term.
	SearchPublic(ctx context.Context, term string, limit int) ([]Result, error)
}
