package course

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shellybish/caddie-mvp-sub000/internal/application/service"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type UploadCourseImageUseCase struct {
	courseRepo course.Repository
	uploader   service.Uploader
	logger     logger.Logger
}

func NewUploadCourseImageUseCase(repo course.Repository, uploader service.Uploader, log logger.Logger) *UploadCourseImageUseCase {
	return &UploadCourseImageUseCase{courseRepo: repo, uploader: uploader, logger: log}
}

func (uc *UploadCourseImageUseCase) Execute(ctx context.Context, courseID uuid.UUID, file io.Reader) (string, error) {
	if _, err := uc.courseRepo.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, course.ErrCourseNotFound) {
			return "", apperror.NewNotFound("course", courseID.String())
		}
		return "", err
	}

	folder := fmt.Sprintf("courses/%s", courseID.String())
	url, err := uc.uploader.Upload(ctx, file, folder, courseID.String())
	if err != nil {
		return "", apperror.NewInternal("failed to upload course image", err)
	}

	if err := uc.courseRepo.SetImageURL(ctx, courseID, url); err != nil {
		go uc.uploader.Delete(context.Background(), folder+"/"+courseID.String())
		return "", err
	}

	uc.logger.Info("course image updated", zap.String("course_id", courseID.String()))
	return url, nil
}
