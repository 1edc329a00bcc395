package course

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// South African provinces, the only values accepted for Course.Province.
var Provinces = []string{
	"Eastern Cape",
	"Free State",
	"Gauteng",
	"KwaZulu-Natal",
	"Limpopo",
	"Mpumalanga",
	"North West",
	"Northern Cape",
	"Western Cape",
}

type Course struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	Province      string    `json:"province"`
	Description   string    `json:"description"`
	ImageURL      *string   `json:"image_url"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
}

// Result is a course enriched with the relevance score computed for the
// search term that produced it.
type Result struct {
	Course
	RelevanceScore int `json:"relevance_score"`
}

// Filters narrow course queries; zero values mean "no constraint".
type Filters struct {
	Province  string
	MinRating float64
}

var (
	ErrCourseNotFound  = errors.New("course not found")
	ErrInvalidProvince = errors.New("invalid province")
)

func (c *Course) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	if c.Location == "" {
		return errors.New("location is required")
	}
	if !IsValidProvince(c.Province) {
		return ErrInvalidProvince
	}
	return nil
}

func IsValidProvince(province string) bool {
	for _, p := range Provinces {
		if province == p {
			return true
		}
	}
	return false
}

type Repository interface {
	Save(ctx context.Context, c *Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*Course, error)
	SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error

	// Search matches name, location, province and description against term.
	// Rows come pre-joined with rating aggregates.
	Search(ctx context.Context, term string, filters Filters, limit int) ([]Course, error)

	// List is browse mode: filters only, no search term. Ordering by sort
	// happens in the store so pagination stays globally consistent.
	List(ctx context.Context, filters Filters, sort SortKey, limit, offset int) ([]Course, error)

	// HighestRated returns courses ordered by average rating, requiring at
	// least minReviews reviews to qualify.
	HighestRated(ctx context.Context, minReviews, limit int) ([]Course, error)

	// Trending orders courses by review activity within the window.
	Trending(ctx context.Context, window time.Duration, limit int) ([]Course, error)
}
