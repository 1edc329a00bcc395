package review

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shellybish/caddie-mvp-sub000/adapters/event"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/review"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type ReviewsUseCase struct {
	reviewRepo  review.Repository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewReviewsUseCase(repo review.Repository, kClient *event.KafkaProducerClient, log logger.Logger) *ReviewsUseCase {
	return &ReviewsUseCase{
		reviewRepo:  repo,
		kafkaClient: kClient,
		logger:      log,
	}
}

type CreateReviewInput struct {
	CourseID uuid.UUID
	UserID   uuid.UUID
	Rating   int
	Comment  string
}

func (uc *ReviewsUseCase) Create(ctx context.Context, input CreateReviewInput) (*review.Review, error) {
	r := &review.Review{
		ID:        uuid.New(),
		CourseID:  input.CourseID,
		UserID:    input.UserID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("validation failed", err)
	}

	if err := uc.reviewRepo.Save(ctx, r); err != nil {
		return nil, apperror.NewInternal("failed to save review", err)
	}

	if uc.kafkaClient != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			err := uc.kafkaClient.PublishReviewEvent(ctx, event.ReviewEventPayload{
				EventType: event.ReviewEventTypeCreated,
				ReviewID:  r.ID,
				CourseID:  r.CourseID,
				UserID:    r.UserID,
				Rating:    r.Rating,
			})
			if err != nil {
				uc.logger.Error("Failed to publish review event", err, zap.String("review_id", r.ID.String()))
			}
		}()
	}

	return r, nil
}

func (uc *ReviewsUseCase) ListByCourse(ctx context.Context, courseID uuid.UUID, page, limit int) ([]review.Review, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	reviews, err := uc.reviewRepo.ListByCourse(ctx, courseID, limit, (page-1)*limit)
	if err != nil {
		return nil, apperror.NewInternal("failed to list reviews", err)
	}
	return reviews, nil
}
