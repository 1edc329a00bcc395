package course

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type BrowseCoursesUseCase struct {
	courseRepo course.Repository
	logger     logger.Logger
}

func NewBrowseCoursesUseCase(repo course.Repository, log logger.Logger) *BrowseCoursesUseCase {
	return &BrowseCoursesUseCase{courseRepo: repo, logger: log}
}

type BrowseInput struct {
	Filters course.Filters
	Sort    course.SortKey
	Page    int
	Limit   int
}

// Execute is browse mode: no search term, so relevance plays no part and the
// ordering falls back to the requested sort key (rating descending by
// default).
func (uc *BrowseCoursesUseCase) Execute(ctx context.Context, input BrowseInput) ([]course.Result, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Sort == "" {
		input.Sort = course.DefaultSortKey
	}
	offset := (input.Page - 1) * input.Limit

	courses, err := uc.courseRepo.List(ctx, input.Filters, input.Sort, input.Limit, offset)
	if err != nil {
		return nil, apperror.NewInternal("failed to list courses", err)
	}

	// The store already ordered the page; re-sorting here would only ever
	// reorder within one page, never across pages.
	return course.ScoreAll(courses, ""), nil
}

type GetCourseUseCase struct {
	courseRepo course.Repository
}

func NewGetCourseUseCase(repo course.Repository) *GetCourseUseCase {
	return &GetCourseUseCase{courseRepo: repo}
}

func (uc *GetCourseUseCase) Execute(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	c, err := uc.courseRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, course.ErrCourseNotFound) {
			return nil, apperror.NewNotFound("course", id.String())
		}
		return nil, err
	}
	return c, nil
}
