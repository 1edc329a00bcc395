package list

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type ListsUseCase struct {
	listRepo list.Repository
	logger   logger.Logger
}

func NewListsUseCase(repo list.Repository, log logger.Logger) *ListsUseCase {
	return &ListsUseCase{listRepo: repo, logger: log}
}

type CreateListInput struct {
	UserID      uuid.UUID
	Title       string
	Description *string
	IsPublic    bool
}

func (uc *ListsUseCase) Create(ctx context.Context, input CreateListInput) (*list.CourseList, error) {
	l := &list.CourseList{
		ID:          uuid.New(),
		Title:       input.Title,
		Description: input.Description,
		IsPublic:    input.IsPublic,
		UserID:      input.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := l.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if err := uc.listRepo.Save(ctx, l); err != nil {
		return nil, apperror.NewInternal("failed to create list", err)
	}
	return l, nil
}

// AddCourse only allows the list owner to add courses.
func (uc *ListsUseCase) AddCourse(ctx context.Context, listID, courseID, userID uuid.UUID) error {
	l, err := uc.listRepo.FindByID(ctx, listID)
	if err != nil {
		if errors.Is(err, list.ErrListNotFound) {
			return apperror.NewNotFound("list", listID.String())
		}
		return apperror.NewInternal("failed to load list", err)
	}
	if l.UserID != userID {
		return apperror.NewPermissionDenied("only the list owner can add courses")
	}

	if err := uc.listRepo.AddCourse(ctx, listID, courseID); err != nil {
		if errors.Is(err, list.ErrCourseAlreadyInList) {
			return apperror.NewConflict("list course", "course_id", courseID.String())
		}
		return apperror.NewInternal("failed to add course to list", err)
	}
	return nil
}

func (uc *ListsUseCase) BrowsePublic(ctx context.Context, page, limit int) ([]list.CourseList, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	lists, err := uc.listRepo.ListPublic(ctx, limit, (page-1)*limit)
	if err != nil {
		return nil, apperror.NewInternal("failed to list public lists", err)
	}
	return lists, nil
}
