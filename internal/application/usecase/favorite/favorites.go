package favorite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Shellybish/caddie-mvp-sub000/adapters/event"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/favorite"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

const persistTimeout = 5 * time.Second

type FavoritesUseCase struct {
	favRepo     favorite.Repository
	kafkaClient *event.KafkaProducerClient
	logger      logger.Logger
}

func NewFavoritesUseCase(repo favorite.Repository, kClient *event.KafkaProducerClient, log logger.Logger) *FavoritesUseCase {
	return &FavoritesUseCase{
		favRepo:     repo,
		kafkaClient: kClient,
		logger:      log,
	}
}

func (uc *FavoritesUseCase) List(ctx context.Context, userID uuid.UUID) ([]favorite.Entry, error) {
	entries, err := uc.favRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to list favorites", err)
	}
	return entries, nil
}

// Add enforces the cap at the write boundary: a fifth favorite is rejected
// with a message distinct from generic failure.
func (uc *FavoritesUseCase) Add(ctx context.Context, userID, courseID uuid.UUID) (*favorite.Entry, error) {
	entry, err := uc.favRepo.Add(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, favorite.ErrLimitReached) {
			msg := fmt.Sprintf("You can only have %d favourite courses. Remove one to add another.", favorite.MaxEntries)
			return nil, apperror.NewLimitExceeded(msg, "favorites cap reached")
		}
		if errors.Is(err, favorite.ErrAlreadyExists) {
			return nil, apperror.NewConflict("favorite", "course_id", courseID.String())
		}
		return nil, apperror.NewInternal("failed to add favorite", err)
	}

	uc.publishAsync(event.FavoriteEventPayload{
		EventType: event.FavoriteEventTypeAdded,
		UserID:    userID,
		CourseID:  courseID,
	})
	return entry, nil
}

func (uc *FavoritesUseCase) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	if err := uc.favRepo.Remove(ctx, userID, courseID); err != nil {
		if errors.Is(err, favorite.ErrEntryNotFound) {
			return apperror.NewNotFound("favorite", courseID.String())
		}
		return apperror.NewInternal("failed to remove favorite", err)
	}

	uc.publishAsync(event.FavoriteEventPayload{
		EventType: event.FavoriteEventTypeRemoved,
		UserID:    userID,
		CourseID:  courseID,
	})
	return nil
}

// Reorder applies the move locally and returns the new order right away;
// persistence happens in the background and a failure does not roll the
// order back. The divergence window closes on the next full reload. The
// failure is logged and published so it can surface as a notification.
func (uc *FavoritesUseCase) Reorder(ctx context.Context, userID, movedID, targetID uuid.UUID) ([]favorite.Entry, error) {
	entries, err := uc.favRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to load favorites for reorder", err)
	}

	reordered := favorite.Reorder(entries, movedID, targetID)
	orderedIDs := favorite.CourseIDs(reordered)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		if err := uc.favRepo.UpdatePositions(ctx, userID, orderedIDs); err != nil {
			uc.logger.Error("failed to persist favorite order", err, zap.String("user_id", userID.String()))
			uc.publish(ctx, event.FavoriteEventPayload{
				EventType:        event.FavoriteEventTypeReorderFailed,
				UserID:           userID,
				OrderedCourseIDs: orderedIDs,
				Reason:           "persistence failed",
			})
			return
		}
		uc.publish(ctx, event.FavoriteEventPayload{
			EventType:        event.FavoriteEventTypeReordered,
			UserID:           userID,
			OrderedCourseIDs: orderedIDs,
		})
	}()

	return reordered, nil
}

func (uc *FavoritesUseCase) publishAsync(payload event.FavoriteEventPayload) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		uc.publish(ctx, payload)
	}()
}

func (uc *FavoritesUseCase) publish(ctx context.Context, payload event.FavoriteEventPayload) {
	if uc.kafkaClient == nil {
		return
	}
	if err := uc.kafkaClient.PublishFavoriteEvent(ctx, payload); err != nil {
		uc.logger.Error("failed to publish favorite event", err, zap.String("event_type", payload.EventType))
	}
}
