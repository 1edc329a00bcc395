package course

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

const (
	cacheKeyHighestRated = "courses:top:rated"
	cacheKeyTrending     = "courses:top:trending"

	// A course needs a handful of reviews before its average is meaningful.
	highestRatedMinReviews = 3
	trendingWindow         = 30 * 24 * time.Hour
	topLimit               = 10
)

// TopCoursesUseCase serves the highest-rated and trending course lists with
// a Redis cache in front of the aggregate queries. The worker refreshes both
// keys when review events arrive.
type TopCoursesUseCase struct {
	courseRepo course.Repository
	cache      *redis.Client
	cacheTTL   time.Duration
	logger     logger.Logger
}

func NewTopCoursesUseCase(repo course.Repository, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *TopCoursesUseCase {
	return &TopCoursesUseCase{
		courseRepo: repo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		logger:     log,
	}
}

func (uc *TopCoursesUseCase) HighestRated(ctx context.Context) ([]course.Course, error) {
	return uc.cached(ctx, cacheKeyHighestRated, func(ctx context.Context) ([]course.Course, error) {
		return uc.courseRepo.HighestRated(ctx, highestRatedMinReviews, topLimit)
	})
}

func (uc *TopCoursesUseCase) Trending(ctx context.Context) ([]course.Course, error) {
	return uc.cached(ctx, cacheKeyTrending, func(ctx context.Context) ([]course.Course, error) {
		return uc.courseRepo.Trending(ctx, trendingWindow, topLimit)
	})
}

// Refresh recomputes both lists and overwrites the cache. Called by the
// worker when review activity invalidates the rankings.
func (uc *TopCoursesUseCase) Refresh(ctx context.Context) error {
	rated, err := uc.courseRepo.HighestRated(ctx, highestRatedMinReviews, topLimit)
	if err != nil {
		return apperror.NewInternal("failed to recompute highest rated courses", err)
	}
	uc.cacheSet(ctx, cacheKeyHighestRated, rated)

	trending, err := uc.courseRepo.Trending(ctx, trendingWindow, topLimit)
	if err != nil {
		return apperror.NewInternal("failed to recompute trending courses", err)
	}
	uc.cacheSet(ctx, cacheKeyTrending, trending)
	return nil
}

func (uc *TopCoursesUseCase) cached(ctx context.Context, key string, load func(context.Context) ([]course.Course, error)) ([]course.Course, error) {
	if uc.cache != nil {
		raw, err := uc.cache.Get(ctx, key).Bytes()
		if err == nil {
			var courses []course.Course
			if err := json.Unmarshal(raw, &courses); err == nil {
				return courses, nil
			}
			uc.logger.Warn("corrupt cache entry, falling through", zap.String("key", key))
		} else if err != redis.Nil {
			uc.logger.Warn("cache get error", zap.String("key", key), zap.Error(err))
		}
	}

	courses, err := load(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to load top courses", err)
	}

	uc.asyncCacheSet(key, courses)
	return courses, nil
}

func (uc *TopCoursesUseCase) asyncCacheSet(key string, courses []course.Course) {
	if uc.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		uc.cacheSet(ctx, key, courses)
	}()
}

func (uc *TopCoursesUseCase) cacheSet(ctx context.Context, key string, courses []course.Course) {
	if uc.cache == nil {
		return
	}
	raw, err := json.Marshal(courses)
	if err != nil {
		uc.logger.Warn("failed to marshal courses for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := uc.cache.Set(ctx, key, raw, uc.cacheTTL).Err(); err != nil {
		uc.logger.Warn("cache set error", zap.String("key", key), zap.Error(err))
	}
}
