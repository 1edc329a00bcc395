package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// MaxEntries is enforced at the write boundary: a user's favorites list can
// never grow beyond this.
const MaxEntries = 4

// CourseSummary is the denormalized course slice carried on every entry so
// lists render without a second query.
type CourseSummary struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	ImageURL *string `json:"image_url,omitempty"`
}

// Entry is one favorite course. Position values form a dense 1-based
// sequence matching array index + 1 after any successful reorder.
type Entry struct {
	ID       uuid.UUID     `json:"id"`
	CourseID uuid.UUID     `json:"course_id"`
	Position int           `json:"position"`
	Course   CourseSummary `json:"course"`
}

var (
	ErrLimitReached  = errors.New("favorites limit reached")
	ErrEntryNotFound = errors.New("favorite entry not found")
	ErrAlreadyExists = errors.New("course already in favorites")
)

// Reorder returns a new slice with the entry identified by movedID moved to
// the index currently held by targetID: a single-element move-and-shift, not
// a swap. Positions are recomputed dense 1..n. The input is never mutated
// and cardinality never changes. Unknown ids or moved == target return the
// entries unchanged (fresh copy, positions normalized).
func Reorder(entries []Entry, movedID, targetID uuid.UUID) []Entry {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)

	from, to := -1, -1
	for i, e := range ordered {
		if e.ID == movedID {
			from = i
		}
		if e.ID == targetID {
			to = i
		}
	}

	if from >= 0 && to >= 0 && from != to {
		moved := ordered[from]
		ordered = append(ordered[:from], ordered[from+1:]...)
		ordered = append(ordered[:to], append([]Entry{moved}, ordered[to:]...)...)
	}

	for i := range ordered {
		ordered[i].Position = i + 1
	}
	return ordered
}

// CourseIDs projects the ordered course ids, the shape the bulk reposition
// write expects.
func CourseIDs(entries []Entry) []uuid.UUID {
	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.CourseID
	}
	return ids
}

type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Entry, error)

	// Add appends the course at the next position. Fails with
	// ErrLimitReached when the user already holds MaxEntries entries; the
	// check and the insert run in one transaction.
	Add(ctx context.Context, userID, courseID uuid.UUID) (*Entry, error)

	Remove(ctx context.Context, userID, courseID uuid.UUID) error

	// UpdatePositions atomically rewrites the user's positions to match the
	// given course id order.
	UpdatePositions(ctx context.Context, userID uuid.UUID, orderedCourseIDs []uuid.UUID) error
}
