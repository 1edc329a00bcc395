package course

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
)

type CreateCourseUseCase struct {
	courseRepo course.Repository
}

func NewCreateCourseUseCase(repo course.Repository) *CreateCourseUseCase {
	return &CreateCourseUseCase{courseRepo: repo}
}

type CreateCourseInput struct {
	Name        string
	Location    string
	Province    string
	Description string
}

func (uc *CreateCourseUseCase) Execute(ctx context.Context, input CreateCourseInput) (*course.Course, error) {
	c := &course.Course{
		ID:          uuid.New(),
		Name:        input.Name,
		Location:    input.Location,
		Province:    input.Province,
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := c.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if err := uc.courseRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
